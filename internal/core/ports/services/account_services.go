package services

import (
	"context"

	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/corebank/ledgerd/internal/dto"
)

// AccountReaderSvc defines read operations on accounts.
type AccountReaderSvc interface {
	// GetAccountByNumber retrieves an account the caller owns or may
	// administratively inspect.
	GetAccountByNumber(ctx context.Context, callerID string, accountNumber string) (*domain.Account, error)

	// ListAccountsForUser retrieves the caller's own accounts.
	ListAccountsForUser(ctx context.Context, callerID string) ([]domain.Account, error)

	// ListAllAccounts retrieves all accounts, or one user's accounts if
	// targetUserID is set. Admin only.
	ListAllAccounts(ctx context.Context, callerID string, targetUserID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines account lifecycle operations.
type AccountWriterSvc interface {
	// CreateAccount opens a new account with a freshly generated account
	// number, retrying generation on collision. Admin callers may open an
	// account for a target user after verifying that user exists.
	CreateAccount(ctx context.Context, callerID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccountStatus changes an account's lifecycle status. Admin only.
	UpdateAccountStatus(ctx context.Context, callerID string, accountNumber string, status domain.AccountStatus) error

	// CloseAccount marks the caller's own account closed. Accounts are never
	// deleted through this path.
	CloseAccount(ctx context.Context, callerID string, accountNumber string) error

	// DeleteAccount removes an account entirely. Admin correction only.
	DeleteAccount(ctx context.Context, callerID string, accountNumber string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
