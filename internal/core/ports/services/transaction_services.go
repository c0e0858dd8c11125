package services

import (
	"context"

	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/corebank/ledgerd/internal/dto"
)

// TransactionReaderSvc defines read operations on the transaction log.
type TransactionReaderSvc interface {
	// ListTransactionsByAccount retrieves an account's history, most-recent-first.
	// The caller must own the account or be an admin.
	ListTransactionsByAccount(ctx context.Context, callerID string, accountNumber string, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// ListRecentTransactions retrieves the caller's transactions across all
	// their accounts, most-recent-first.
	ListRecentTransactions(ctx context.Context, callerID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// ListTaxTransactions retrieves the caller's tax transactions.
	ListTaxTransactions(ctx context.Context, callerID string, limit int) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines administrative append/correction operations.
type TransactionWriterSvc interface {
	// CreateTaxTransaction records a tax charge against a user. Admin only; the
	// stored amount is always negative.
	CreateTaxTransaction(ctx context.Context, callerID string, req dto.CreateTaxRequest) (*domain.Transaction, error)

	// CreateTaxTransactions records several tax charges at once. Admin only.
	CreateTaxTransactions(ctx context.Context, callerID string, reqs []dto.CreateTaxRequest) ([]domain.Transaction, error)

	// DeleteTransaction removes a record as part of an administrative
	// delete+recreate correction. Admin only.
	DeleteTransaction(ctx context.Context, callerID string, transactionID string) error
}

// TransactionSvcFacade combines the transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
