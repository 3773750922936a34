package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nithin-ak/concert-fever/internal/domain"
)

// LedgerRepository serves the balance surface outside purchase transactions.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	const query = `SELECT balance FROM accounts WHERE user_id = $1`

	var balance decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		if isInvalidUUID(err) {
			return decimal.Zero, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return decimal.Zero, domain.ErrAccountNotFound
		}
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

func (r *LedgerRepository) CreditBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	const stmt = `
UPDATE accounts
SET balance = balance + $2
WHERE user_id = $1
RETURNING balance`

	var balance decimal.Decimal
	if err := r.pool.QueryRow(ctx, stmt, userID, amount).Scan(&balance); err != nil {
		if isInvalidUUID(err) {
			return decimal.Zero, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return decimal.Zero, domain.ErrAccountNotFound
		}
		return decimal.Zero, fmt.Errorf("credit balance: %w", err)
	}
	return balance, nil
}
