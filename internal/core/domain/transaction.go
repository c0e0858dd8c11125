package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger record.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Transfer   TransactionType = "transfer"
	Payment    TransactionType = "payment"
	Tax        TransactionType = "tax"
)

// TransactionStatus is the settlement state of a transaction record.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
	TxnCancelled TransactionStatus = "cancelled"
)

// Transaction is one immutable ledger record. Amounts are stored signed:
// credits positive, debits negative (deposit +A, withdrawal -A, transfer
// debit leg -A, transfer credit leg +A, tax -A). The two legs of a transfer
// share the same OperationRef so they can be reconciled.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	OperationRef  string            `json:"operationRef"`
	AccountID     string            `json:"accountID"`
	UserID        string            `json:"userID"` // account owner at transaction time
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	Currency      string            `json:"currency"`
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
