package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nithin-ak/concert-fever/internal/clock"
	"github.com/nithin-ak/concert-fever/internal/domain"
)

type PurchaseRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUser(ctx context.Context, userID string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetBalanceForUpdate(ctx context.Context, userID string) (decimal.Decimal, error)
	DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	GetCoupon(ctx context.Context, couponID string) (domain.DiscountCoupon, error)
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	ReserveCategory(ctx context.Context, eventID, label string, count int) (int, error)
	CreateTicket(ctx context.Context, ticket domain.Ticket) error
	ListTicketsByUser(ctx context.Context, userID string) ([]domain.Ticket, error)
}

// Notifier delivers the purchase confirmation. It is called only after the
// purchase has committed and its failure never rolls the purchase back.
type Notifier interface {
	SendPurchaseConfirmation(ctx context.Context, email, subject, htmlBody string) error
}

const confirmationSubject = "Purchase Confirmation"

// PurchaseService orchestrates ticket purchases: affordability check,
// coupon resolution, per-item inventory reservation, ticket creation and
// ledger debit, all inside one transaction, followed by a best-effort
// confirmation email.
type PurchaseService struct {
	repo     PurchaseRepository
	notifier Notifier
	clock    clock.Clock
	logger   *zap.Logger
}

func NewPurchaseService(repo PurchaseRepository, notifier Notifier, clk clock.Clock, logger *zap.Logger) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
	}
}

// PurchaseItem is one requested ticket. FinalPrice is the caller-quoted
// price and is charged verbatim; it is not recomputed from the category
// price here.
type PurchaseItem struct {
	EventID       string
	CategoryLabel string
	FinalPrice    decimal.Decimal
}

type PurchaseInput struct {
	BuyerID  string
	CouponID string
	Items    []PurchaseItem
}

type PurchaseResult struct {
	Tickets    []domain.Ticket
	NewBalance decimal.Decimal
	// NotifyErr reports a failed confirmation dispatch. The purchase itself
	// is committed regardless.
	NotifyErr error
}

// Purchase executes one cart as a single all-or-nothing transaction. Any
// failure on any line item rolls back every ticket, reservation and debit
// of the attempt.
func (s *PurchaseService) Purchase(ctx context.Context, in PurchaseInput) (PurchaseResult, error) {
	if len(in.Items) == 0 {
		return PurchaseResult{}, domain.ErrEmptyCart
	}
	for _, item := range in.Items {
		if item.FinalPrice.IsNegative() {
			return PurchaseResult{}, domain.ErrInvalidAmount
		}
	}

	totalCartPrice := decimal.Zero
	for _, item := range in.Items {
		totalCartPrice = totalCartPrice.Add(item.FinalPrice)
	}

	// Tickets carry a calendar date, matching the DATE column they are
	// stored in, so responses and later listings agree.
	now := s.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var (
		buyer      domain.User
		tickets    []domain.Ticket
		lines      []ConfirmationLine
		newBalance decimal.Decimal
	)

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		buyer, err = s.repo.GetUser(txCtx, in.BuyerID)
		if err != nil {
			return err
		}

		// Locks the account row, serializing concurrent carts from the
		// same buyer against this check.
		balance, err := s.repo.GetBalanceForUpdate(txCtx, in.BuyerID)
		if err != nil {
			return err
		}
		if balance.LessThan(totalCartPrice) {
			return domain.ErrInsufficientFunds
		}

		coupon, err := s.repo.GetCoupon(txCtx, in.CouponID)
		if err != nil {
			return err
		}

		for _, item := range in.Items {
			event, err := s.repo.GetEvent(txCtx, item.EventID)
			if err != nil {
				return err
			}

			if _, err := s.repo.ReserveCategory(txCtx, item.EventID, item.CategoryLabel, 1); err != nil {
				return err
			}

			ticket := domain.Ticket{
				ID:            uuid.NewString(),
				EventID:       item.EventID,
				UserID:        buyer.ID,
				CouponID:      &coupon.ID,
				CategoryLabel: item.CategoryLabel,
				FinalPrice:    item.FinalPrice,
				PurchasedOn:   today,
			}
			if err := s.repo.CreateTicket(txCtx, ticket); err != nil {
				return err
			}

			newBalance, err = s.repo.DebitBalance(txCtx, buyer.ID, item.FinalPrice)
			if err != nil {
				return err
			}

			tickets = append(tickets, ticket)
			lines = append(lines, ConfirmationLine{
				EventName:     event.Name,
				CategoryLabel: item.CategoryLabel,
				FinalPrice:    item.FinalPrice,
			})
		}
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}

	result := PurchaseResult{Tickets: tickets, NewBalance: newBalance}

	body := renderConfirmation(lines)
	if err := s.notifier.SendPurchaseConfirmation(ctx, buyer.Email, confirmationSubject, body); err != nil {
		s.logger.Warn("purchase confirmation not delivered",
			zap.String("user_id", buyer.ID),
			zap.Error(err),
		)
		result.NotifyErr = err
	}

	return result, nil
}

// ListTicketsByEmail returns every ticket the user has purchased.
func (s *PurchaseService) ListTicketsByEmail(ctx context.Context, email string) ([]domain.Ticket, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTicketsByUser(ctx, user.ID)
}
