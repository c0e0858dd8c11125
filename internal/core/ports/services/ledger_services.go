package services

import (
	"context"

	"github.com/corebank/ledgerd/internal/dto"
)

// LedgerSvcFacade is the transactional API exposed to the request layer for
// moving money. Every operation is a single atomic transition: it either
// commits balances, transaction legs, and notifications together, or fails
// without side effects.
type LedgerSvcFacade interface {
	// Deposit credits amount to the account. Allowed for any status except
	// closed.
	Deposit(ctx context.Context, callerID string, accountNumber string, req dto.DepositRequest) (*dto.MovementResult, error)

	// Withdraw debits amount from the account. Rejected for closed and blocked
	// accounts and when the balance cannot cover the amount.
	Withdraw(ctx context.Context, callerID string, accountNumber string, req dto.WithdrawRequest) (*dto.MovementResult, error)

	// Transfer moves amount between two accounts, recording a debit leg and a
	// credit leg that share one operation reference, plus a notification to the
	// recipient. Both balance updates commit atomically or not at all.
	Transfer(ctx context.Context, callerID string, sourceAccountNumber string, req dto.TransferRequest) (*dto.TransferResult, error)
}
