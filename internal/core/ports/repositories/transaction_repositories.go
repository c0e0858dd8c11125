package repositories

import (
	"context"

	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerCommitter is the atomic commit point for balance-affecting operations.
type LedgerCommitter interface {
	// SaveEntry durably applies one ledger operation: it locks every account in
	// balanceChanges, rejects any debit that would drive a balance negative
	// (apperrors.ErrInsufficientFunds), applies the balance deltas, inserts all
	// transaction legs and the optional notification, and commits. On any error
	// nothing is applied. It returns the post-commit balance of each touched
	// account.
	SaveEntry(ctx context.Context, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal, notification *domain.Notification) (map[string]decimal.Decimal, error)
}

// TransactionReader defines read operations for the transaction log.
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction record.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves transactions for an account,
	// most-recent-first, restartable via limit/offset.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error)

	// ListTransactionsByUser retrieves a user's transactions across all accounts,
	// most-recent-first.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Transaction, error)

	// ListTaxTransactionsByUser retrieves transactions where type is tax or the
	// description matches the tax pattern, most-recent-first.
	ListTaxTransactionsByUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}

// TransactionWriter defines append/correction operations outside the atomic
// ledger commit path (tax records, administrative corrections).
type TransactionWriter interface {
	// SaveTransaction appends a standalone transaction record. CreatedAt may be
	// caller-supplied for backdated records.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactions appends several standalone records in one DB transaction.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// DeleteTransaction removes a record (administrative correction via
	// delete+recreate; transactions are otherwise immutable).
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines the transaction log interfaces.
type TransactionRepositoryFacade interface {
	LedgerCommitter
	TransactionReader
	TransactionWriter
}
