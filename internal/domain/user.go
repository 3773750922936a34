package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a registered buyer. Authentication lives outside this service;
// only the identity needed for purchases and notifications is carried here.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// Account holds a user's spendable balance. Exactly one account per user;
// the balance is mutated only through ledger operations and never goes
// negative.
type Account struct {
	UserID    string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
