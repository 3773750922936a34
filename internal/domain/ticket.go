package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketCategory is the sellable inventory for one (event, label) pair.
// Remaining stays within [0, Total]; the decrement is enforced atomically
// by the store.
type TicketCategory struct {
	EventID   string
	Label     string
	Price     decimal.Decimal
	Total     int
	Remaining int
}

// Ticket is the immutable record of one purchased unit. CouponID is the
// coupon applied to the cart it was bought in, kept for provenance.
type Ticket struct {
	ID            string
	EventID       string
	UserID        string
	CouponID      *string
	CategoryLabel string
	FinalPrice    decimal.Decimal
	PurchasedOn   time.Time
}
