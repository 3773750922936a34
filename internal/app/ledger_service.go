package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nithin-ak/concert-fever/internal/domain"
)

type LedgerRepository interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	CreditBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
}

// LedgerService exposes the balance surface outside the purchase path:
// reads and top-ups. Debits happen only inside purchase transactions.
type LedgerService struct {
	repo LedgerRepository
}

func NewLedgerService(repo LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

func (s *LedgerService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.repo.GetBalance(ctx, userID)
}

// TopUp credits the account and returns the new balance. The amount must be
// strictly positive.
func (s *LedgerService) TopUp(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return s.repo.CreditBalance(ctx, userID, amount)
}
