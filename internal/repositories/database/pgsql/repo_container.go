package pgsql

import (
	portsrepo "github.com/corebank/ledgerd/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return &portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		TransactionRepo:  newPgxTransactionRepository(pool, accountRepo),
		NotificationRepo: newPgxNotificationRepository(pool),
		UserRepo:         newPgxUserRepository(pool),
	}
}
