package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corebank/ledgerd/internal/apperrors"
	"github.com/corebank/ledgerd/internal/core/domain"
	portsrepo "github.com/corebank/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/internal/dto"
	"github.com/corebank/ledgerd/internal/middleware"
	"github.com/google/uuid"
)

type TransactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
}

func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		userRepo:        userRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// ListTransactionsByAccount retrieves an account's history, most-recent-first.
func (s *TransactionService) ListTransactionsByAccount(ctx context.Context, callerID string, accountNumber string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	caller, err := fetchCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if err := authorizeAccountAccess(caller, account); err != nil {
		return nil, err
	}
	return s.transactionRepo.ListTransactionsByAccount(ctx, account.AccountID, params.Limit, params.Offset)
}

// ListRecentTransactions retrieves the caller's transactions across all of
// their accounts, most-recent-first.
func (s *TransactionService) ListRecentTransactions(ctx context.Context, callerID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	return s.transactionRepo.ListTransactionsByUser(ctx, callerID, params.Limit, params.Offset)
}

// ListTaxTransactions retrieves the caller's tax records.
func (s *TransactionService) ListTaxTransactions(ctx context.Context, callerID string, limit int) ([]domain.Transaction, error) {
	return s.transactionRepo.ListTaxTransactionsByUser(ctx, callerID, limit)
}

// buildTaxTransaction validates one tax request and converts it to a record.
// The amount is negated unconditionally; a tax charge is always a debit.
func (s *TransactionService) buildTaxTransaction(ctx context.Context, req dto.CreateTaxRequest) (*domain.Transaction, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: tax amount cannot be zero", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: user %s has no accounts", apperrors.ErrValidation, user.UserID)
	}

	now := time.Now().UTC()
	createdAt := now
	if req.CreatedAt != nil {
		createdAt = req.CreatedAt.UTC()
	}

	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		OperationRef:  uuid.NewString(),
		AccountID:     accounts[0].AccountID,
		UserID:        user.UserID,
		Type:          domain.Tax,
		Amount:        req.Amount.Abs().Neg(),
		Currency:      req.Currency,
		Description:   req.Description,
		Status:        domain.TxnCompleted,
		CreatedAt:     createdAt,
		UpdatedAt:     now,
	}, nil
}

// CreateTaxTransaction records one tax charge against a user. Admin only.
// Records may be backdated; they are bookkeeping entries and do not move the
// account balance.
func (s *TransactionService) CreateTaxTransaction(ctx context.Context, callerID string, req dto.CreateTaxRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return nil, err
	}

	txn, err := s.buildTaxTransaction(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.transactionRepo.SaveTransaction(ctx, *txn); err != nil {
		return nil, err
	}

	logger.Info("Tax transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("user_id", txn.UserID),
		slog.String("amount", txn.Amount.String()))
	return txn, nil
}

// CreateTaxTransactions records several tax charges in one DB transaction.
// Admin only. All-or-nothing: one invalid request rejects the whole batch.
func (s *TransactionService) CreateTaxTransactions(ctx context.Context, callerID string, reqs []dto.CreateTaxRequest) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: empty tax batch", apperrors.ErrValidation)
	}

	txns := make([]domain.Transaction, 0, len(reqs))
	for _, req := range reqs {
		txn, err := s.buildTaxTransaction(ctx, req)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}

	if err := s.transactionRepo.SaveTransactions(ctx, txns); err != nil {
		return nil, err
	}

	logger.Info("Tax batch recorded", slog.Int("count", len(txns)))
	return txns, nil
}

// DeleteTransaction removes a record as part of an administrative
// delete+recreate correction. Admin only.
func (s *TransactionService) DeleteTransaction(ctx context.Context, callerID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return err
	}
	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
