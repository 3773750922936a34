package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nithin-ak/concert-fever/internal/domain"
)

// PurchaseRepository backs the purchase orchestrator. All mutations are
// expected to run inside WithTx; the conditional debit and decrement keep
// balances non-negative and inventory within bounds even outside it.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

func (r *PurchaseRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *PurchaseRepository) GetUser(ctx context.Context, userID string) (domain.User, error) {
	const query = `SELECT id, first_name, last_name, email FROM users WHERE id = $1`
	return r.scanUser(r.queryRow(ctx, query, userID))
}

func (r *PurchaseRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT id, first_name, last_name, email FROM users WHERE email = $1`
	return r.scanUser(r.queryRow(ctx, query, email))
}

func (r *PurchaseRepository) scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.User{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetBalanceForUpdate reads the account balance with a row lock, serializing
// concurrent purchases by the same buyer.
func (r *PurchaseRepository) GetBalanceForUpdate(ctx context.Context, userID string) (decimal.Decimal, error) {
	const query = `SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`

	var balance decimal.Decimal
	if err := r.queryRow(ctx, query, userID).Scan(&balance); err != nil {
		if isInvalidUUID(err) {
			return decimal.Zero, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return decimal.Zero, domain.ErrAccountNotFound
		}
		return decimal.Zero, fmt.Errorf("get balance for update: %w", err)
	}
	return balance, nil
}

// DebitBalance subtracts amount only when the balance covers it, so the
// balance can never go negative regardless of caller checks.
func (r *PurchaseRepository) DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	const stmt = `
UPDATE accounts
SET balance = balance - $2
WHERE user_id = $1 AND balance >= $2
RETURNING balance`

	var balance decimal.Decimal
	err := r.queryRow(ctx, stmt, userID, amount).Scan(&balance)
	if err != nil {
		if isCheckViolation(err) {
			return decimal.Zero, domain.ErrInsufficientFunds
		}
		if err == pgx.ErrNoRows {
			// Either the account is missing or the balance no longer covers
			// the amount; distinguish so callers see the right failure.
			var exists bool
			if chkErr := r.queryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM accounts WHERE user_id = $1)`, userID,
			).Scan(&exists); chkErr != nil {
				return decimal.Zero, fmt.Errorf("debit balance: %w", chkErr)
			}
			if !exists {
				return decimal.Zero, domain.ErrAccountNotFound
			}
			return decimal.Zero, domain.ErrInsufficientFunds
		}
		return decimal.Zero, fmt.Errorf("debit balance: %w", err)
	}
	return balance, nil
}

func (r *PurchaseRepository) GetCoupon(ctx context.Context, couponID string) (domain.DiscountCoupon, error) {
	const query = `
SELECT id, coupon_code, event_id, category_label, discount_percentage, expiry_date
FROM discount_coupons
WHERE id = $1`

	var c domain.DiscountCoupon
	err := r.queryRow(ctx, query, couponID).
		Scan(&c.ID, &c.Code, &c.EventID, &c.CategoryLabel, &c.Percentage, &c.ExpiresOn)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.DiscountCoupon{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.DiscountCoupon{}, domain.ErrCouponNotFound
		}
		return domain.DiscountCoupon{}, fmt.Errorf("get coupon: %w", err)
	}
	return c, nil
}

func (r *PurchaseRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	const query = `
SELECT id, venue_id, event_name, description, category_tag, starts_at, ends_at
FROM events
WHERE id = $1`

	var e domain.Event
	err := r.queryRow(ctx, query, eventID).
		Scan(&e.ID, &e.VenueID, &e.Name, &e.Description, &e.CategoryTag, &e.StartsAt, &e.EndsAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// ReserveCategory atomically decrements remaining inventory. The predicate
// makes concurrent last-unit purchasers race on a single conditional update:
// exactly one wins, the rest get ErrSoldOut.
func (r *PurchaseRepository) ReserveCategory(ctx context.Context, eventID, label string, count int) (int, error) {
	if count <= 0 {
		return 0, domain.ErrInvalidQuantity
	}

	const stmt = `
UPDATE ticket_categories
SET remaining_quantity = remaining_quantity - $3
WHERE event_id = $1 AND category_label = $2 AND remaining_quantity >= $3
RETURNING remaining_quantity`

	var remaining int
	err := r.queryRow(ctx, stmt, eventID, label, count).Scan(&remaining)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			var exists bool
			if chkErr := r.queryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM ticket_categories WHERE event_id = $1 AND category_label = $2)`,
				eventID, label,
			).Scan(&exists); chkErr != nil {
				return 0, fmt.Errorf("reserve category: %w", chkErr)
			}
			if !exists {
				return 0, domain.ErrCategoryNotFound
			}
			return 0, domain.ErrSoldOut
		}
		return 0, fmt.Errorf("reserve category: %w", err)
	}
	return remaining, nil
}

func (r *PurchaseRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) error {
	const stmt = `
INSERT INTO tickets (id, event_id, user_id, coupon_id, category_label, final_price, purchased_on)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		ticket.ID,
		ticket.EventID,
		ticket.UserID,
		ticket.CouponID,
		ticket.CategoryLabel,
		ticket.FinalPrice,
		ticket.PurchasedOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create ticket: duplicate id: %w", err)
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) ListTicketsByUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	const query = `
SELECT id, event_id, user_id, coupon_id, category_label, final_price, purchased_on
FROM tickets
WHERE user_id = $1
ORDER BY purchased_on DESC, id`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.EventID, &t.UserID, &t.CouponID, &t.CategoryLabel, &t.FinalPrice, &t.PurchasedOn); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (r *PurchaseRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *PurchaseRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *PurchaseRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
