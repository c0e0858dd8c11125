package dto

import (
	"time"

	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for a transaction record.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	OperationRef  string          `json:"operationRef"`
	AccountID     string          `json:"accountID"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		OperationRef:  txn.OperationRef,
		AccountID:     txn.AccountID,
		Type:          string(txn.Type),
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		Description:   txn.Description,
		Status:        string(txn.Status),
		CreatedAt:     txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain transactions.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(txn)
	}
	return res
}

// ListTransactionsParams defines query parameters for transaction listings.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=10"`
	Offset int `form:"offset,default=0"`
}

// CreateTaxRequest is the admin payload for recording a tax transaction.
// Amount is stored negated regardless of the sign supplied.
type CreateTaxRequest struct {
	UserID      string          `json:"userId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"required"`
	Description string          `json:"description" binding:"required"`
	CreatedAt   *time.Time      `json:"created_at"` // optional backdating
}

// CreateTaxBulkRequest is the admin payload for recording several tax
// transactions at once.
type CreateTaxBulkRequest struct {
	Bulk  bool               `json:"bulk"`
	Taxes []CreateTaxRequest `json:"taxes" binding:"required,dive"`
}
