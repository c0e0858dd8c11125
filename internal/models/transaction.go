package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType for DB storage.
type TransactionType string

// TransactionStatus mirrors domain.TransactionStatus for DB storage.
type TransactionStatus string

// Transaction is the transactions table row. Amount carries the signed
// convention documented on the domain type.
type Transaction struct {
	TransactionID string            `db:"transaction_id"`
	OperationRef  string            `db:"operation_ref"`
	AccountID     string            `db:"account_id"`
	UserID        string            `db:"user_id"`
	Type          TransactionType   `db:"transaction_type"`
	Amount        decimal.Decimal   `db:"amount"`
	Currency      string            `db:"currency"`
	Description   string            `db:"description"`
	Status        TransactionStatus `db:"status"`
	CreatedAt     time.Time         `db:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at"`
}
