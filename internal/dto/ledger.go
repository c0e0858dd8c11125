package dto

import (
	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest is the payload for a deposit into an account.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// WithdrawRequest is the payload for a withdrawal from an account.
type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// TransferRequest is the payload for a transfer between two accounts.
type TransferRequest struct {
	ToAccount   string          `json:"to_account" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// MovementResult is the outcome of a single-account ledger operation.
type MovementResult struct {
	NewBalance  decimal.Decimal
	Transaction domain.Transaction
}

// TransferResult is the outcome of a transfer: both post-commit balances and
// the two transaction legs sharing one operation reference.
type TransferResult struct {
	NewSourceBalance      decimal.Decimal
	NewDestinationBalance decimal.Decimal
	DebitLeg              domain.Transaction
	CreditLeg             domain.Transaction
}

// MovementResponse is the HTTP body returned for deposits and withdrawals.
type MovementResponse struct {
	Message     string              `json:"message"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
	Transaction TransactionResponse `json:"transaction"`
}

// TransferResponse is the HTTP body returned for transfers.
type TransferResponse struct {
	Message         string              `json:"message"`
	NewFromBalance  decimal.Decimal     `json:"newFromBalance"`
	NewToBalance    decimal.Decimal     `json:"newToBalance"`
	FromTransaction TransactionResponse `json:"fromTransaction"`
	ToTransaction   TransactionResponse `json:"toTransaction"`
}
