package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrCategoryNotFound  = errors.New("ticket category not found")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSoldOut           = errors.New("sold out")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidCategory   = errors.New("invalid event category")
	ErrInvalidID         = errors.New("invalid id")
)
