package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// AccountStatus mirrors domain.AccountStatus for DB storage.
type AccountStatus string

// Account is the accounts table row.
type Account struct {
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"`
	OwnerID       string          `db:"owner_id"`
	Type          AccountType     `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	Currency      string          `db:"currency"`
	Status        AccountStatus   `db:"status"`
	OpenedAt      time.Time       `db:"opened_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
