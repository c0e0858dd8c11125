package services

import (
	portsrepo "github.com/corebank/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/pkg/config"
)

// NewServiceContainer wires all services over the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:       NewLedgerService(repos.AccountRepo, repos.TransactionRepo, repos.UserRepo),
		Account:      NewAccountService(repos.AccountRepo, repos.TransactionRepo, repos.UserRepo),
		Transaction:  NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.UserRepo),
		Notification: NewNotificationService(repos.NotificationRepo, repos.UserRepo),
		User:         NewUserService(repos.UserRepo),
		Token:        NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	}
}
