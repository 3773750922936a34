package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type flakyDispatcher struct {
	failures int
	calls    int
}

func (d *flakyDispatcher) SendPurchaseConfirmation(_ context.Context, _, _, _ string) error {
	d.calls++
	if d.calls <= d.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func TestRetrier(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after transient failure", func(t *testing.T) {
		next := &flakyDispatcher{failures: 1}
		r := NewRetrier(next, 3, 0, nil)

		err := r.SendPurchaseConfirmation(context.Background(), "a@b.c", "s", "body")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if next.calls != 2 {
			t.Fatalf("expected 2 attempts, got %d", next.calls)
		}
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		next := &flakyDispatcher{failures: 10}
		r := NewRetrier(next, 3, 0, nil)

		err := r.SendPurchaseConfirmation(context.Background(), "a@b.c", "s", "body")
		if err == nil {
			t.Fatalf("expected error")
		}
		if next.calls != 3 {
			t.Fatalf("expected exactly 3 attempts, got %d", next.calls)
		}
		if !strings.Contains(err.Error(), "giving up after 3 attempts") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		next := &flakyDispatcher{failures: 10}
		r := NewRetrier(next, 3, 0, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := r.SendPurchaseConfirmation(ctx, "a@b.c", "s", "body")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if next.calls != 1 {
			t.Fatalf("expected 1 attempt before cancel, got %d", next.calls)
		}
	})
}

func TestLogDispatcher(t *testing.T) {
	t.Parallel()

	d := NewLogDispatcher(nil)
	if err := d.SendPurchaseConfirmation(context.Background(), "a@b.c", "s", "body"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
