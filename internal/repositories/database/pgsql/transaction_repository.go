package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/corebank/ledgerd/internal/apperrors"
	"github.com/corebank/ledgerd/internal/core/domain"
	portsrepo "github.com/corebank/ledgerd/internal/core/ports/repositories"
	"github.com/corebank/ledgerd/internal/models"
	"github.com/corebank/ledgerd/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, operation_ref, account_id, user_id, transaction_type, amount, currency, description, status, created_at, updated_at`

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, operation_ref, account_id, user_id, transaction_type, amount, currency, description, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxTransactionRepository creates a new repository for the transaction log.
// The account repository dependency provides the in-tx lock and balance-update
// primitives used by the atomic ledger commit.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OperationRef,
		&m.AccountID,
		&m.UserID,
		&m.Type,
		&m.Amount,
		&m.Currency,
		&m.Description,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// computeEntryBalances derives each account's post-entry balance from the
// locked rows. This is the authoritative funds check: it runs on balances read
// under FOR UPDATE, not on whatever the caller saw before the locks were
// taken, so concurrent debits serialize and at most one can spend the same
// funds.
func computeEntryBalances(locked map[string]domain.Account, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	newBalances := make(map[string]decimal.Decimal, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		result := locked[accountID].Balance.Add(delta)
		if delta.IsNegative() && result.IsNegative() {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, locked[accountID].AccountNumber)
		}
		newBalances[accountID] = result
	}
	return newBalances, nil
}

// SaveEntry durably applies one ledger operation inside a single DB
// transaction: lock account rows in ascending ID order, reject any debit that
// would drive a balance negative, apply the deltas, insert every transaction
// leg plus the optional notification, commit. On any failure the whole entry
// rolls back, so a transfer can never be left half-applied.
func (r *PgxTransactionRepository) SaveEntry(ctx context.Context, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal, notification *domain.Notification) (map[string]decimal.Decimal, error) {
	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	newBalances, err := computeEntryBalances(locked, balanceChanges)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, now); err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	for _, txn := range transactions {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(insertTransactionQuery,
			m.TransactionID,
			m.OperationRef,
			m.AccountID,
			m.UserID,
			m.Type,
			m.Amount,
			m.Currency,
			m.Description,
			m.Status,
			m.CreatedAt,
			m.UpdatedAt,
		)
	}
	if notification != nil {
		n := mapping.ToModelNotification(*notification)
		batch.Queue(insertNotificationQuery,
			n.NotificationID,
			n.UserID,
			n.Title,
			n.Message,
			n.Read,
			n.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to execute ledger entry batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return newBalances, nil
}

// FindTransactionByID retrieves a single transaction record.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(txns), nil
}

// ListTransactionsByAccount retrieves an account's records, most-recent-first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	return r.queryTransactions(ctx, query, accountID, limit, offset)
}

// ListTransactionsByUser retrieves a user's records across all accounts,
// most-recent-first.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	return r.queryTransactions(ctx, query, userID, limit, offset)
}

// ListTaxTransactionsByUser retrieves records typed tax or whose description
// matches the tax pattern, most-recent-first.
func (r *PgxTransactionRepository) ListTaxTransactionsByUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND (transaction_type = 'tax' OR description ILIKE '%tax%')
		ORDER BY created_at DESC
		LIMIT $2;
	`
	return r.queryTransactions(ctx, query, userID, limit)
}

// SaveTransaction appends a standalone record (tax charges, backdated seeds).
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.OperationRef,
		m.AccountID,
		m.UserID,
		m.Type,
		m.Amount,
		m.Currency,
		m.Description,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransactions appends several standalone records in one DB transaction.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(insertTransactionQuery,
			m.TransactionID,
			m.OperationRef,
			m.AccountID,
			m.UserID,
			m.Type,
			m.Amount,
			m.Currency,
			m.Description,
			m.Status,
			m.CreatedAt,
			m.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute transaction batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a record (administrative delete+recreate
// correction; the log is otherwise append-only).
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
