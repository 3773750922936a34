package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Dispatcher is implemented by anything that can deliver a confirmation.
type Dispatcher interface {
	SendPurchaseConfirmation(ctx context.Context, email, subject, htmlBody string) error
}

// Retrier wraps a Dispatcher with bounded retries. After the last failed
// attempt it gives up and returns the final error; it never blocks the
// purchase that triggered it beyond attempts*backoff.
type Retrier struct {
	next     Dispatcher
	attempts int
	backoff  time.Duration
	logger   *zap.Logger
}

func NewRetrier(next Dispatcher, attempts int, backoff time.Duration, logger *zap.Logger) *Retrier {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrier{
		next:     next,
		attempts: attempts,
		backoff:  backoff,
		logger:   logger,
	}
}

func (r *Retrier) SendPurchaseConfirmation(ctx context.Context, email, subject, htmlBody string) error {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		lastErr = r.next.SendPurchaseConfirmation(ctx, email, subject, htmlBody)
		if lastErr == nil {
			return nil
		}
		r.logger.Warn("confirmation dispatch failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.attempts),
			zap.Error(lastErr),
		)
		if attempt == r.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff):
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", r.attempts, lastErr)
}

// LogDispatcher logs confirmations instead of delivering them. Used when no
// SMTP endpoint is configured.
type LogDispatcher struct {
	logger *zap.Logger
}

func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) SendPurchaseConfirmation(_ context.Context, email, subject, _ string) error {
	d.logger.Info("purchase confirmation (not delivered, smtp disabled)",
		zap.String("to", email),
		zap.String("subject", subject),
	)
	return nil
}
