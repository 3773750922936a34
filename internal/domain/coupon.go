package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountCoupon is a cart-level discount rule. EventID and CategoryLabel
// optionally scope the coupon; Percentage is the discount in percent.
// The rule is resolved once per purchase and attached to every ticket of
// that cart without per-item revalidation.
type DiscountCoupon struct {
	ID            string
	Code          string
	EventID       *string
	CategoryLabel *string
	Percentage    decimal.Decimal
	ExpiresOn     time.Time
}
