package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/nithin-ak/concert-fever/internal/domain"
	"github.com/nithin-ak/concert-fever/internal/testutil"
)

func TestLedgerRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewLedgerRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("GetBalance", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		userID := testutil.InsertUserWithBalance(t, ctx, pool, "buyer@example.com", dec("42.50"))

		balance, err := repo.GetBalance(ctx, userID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !balance.Equal(dec("42.50")) {
			t.Fatalf("expected 42.50, got %s", balance)
		}

		if _, err := repo.GetBalance(ctx, uuid.NewString()); err != domain.ErrAccountNotFound {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
		if _, err := repo.GetBalance(ctx, "not-a-uuid"); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("CreditBalance", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		userID := testutil.InsertUserWithBalance(t, ctx, pool, "buyer@example.com", dec("10.00"))

		balance, err := repo.CreditBalance(ctx, userID, dec("15.50"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !balance.Equal(dec("25.50")) {
			t.Fatalf("expected 25.50, got %s", balance)
		}

		if _, err := repo.CreditBalance(ctx, uuid.NewString(), dec("1.00")); err != domain.ErrAccountNotFound {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}
