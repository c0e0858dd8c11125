package repositories

import (
	"context"
	"time"

	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its internal identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its external 10-digit number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByOwner retrieves all accounts owned by a user.
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)

	// ListAccounts retrieves a paginated list of all accounts (admin view).
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate if
	// the generated account number collides with an existing one.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus changes the lifecycle status of an account.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) error

	// DeleteAccount removes an account entirely (administrative correction only).
	DeleteAccount(ctx context.Context, accountNumber string) error
}

// AccountTransactionSupport defines the in-transaction primitives the ledger
// commit path builds on. Both methods operate on an open pgx.Tx so that row
// locks, balance updates, and transaction-record inserts commit atomically.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects the accounts FOR UPDATE, locking the
	// rows for the remainder of the transaction. Callers must pass account IDs
	// in ascending order to keep lock acquisition deadlock-free.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies balance = balance + delta for each entry.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
