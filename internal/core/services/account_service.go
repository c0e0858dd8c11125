package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corebank/ledgerd/internal/apperrors"
	"github.com/corebank/ledgerd/internal/core/domain"
	portsrepo "github.com/corebank/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/internal/dto"
	"github.com/corebank/ledgerd/internal/middleware"
	"github.com/corebank/ledgerd/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxAccountNumberAttempts bounds the retry loop when a freshly generated
// account number collides with an existing one.
const maxAccountNumberAttempts = 5

const defaultCurrency = "USD"

type AccountService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
}

func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount opens a new account for the caller, or for a target user when
// an admin supplies one. The generated account number is retried on collision;
// uniqueness is enforced by the store, not by generation.
func (s *AccountService) CreateAccount(ctx context.Context, callerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	caller, err := fetchCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}

	if !domain.ValidAccountType(req.Type) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}
	if req.InitialDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: initial deposit cannot be negative", apperrors.ErrValidation)
	}

	ownerID := caller.UserID
	if req.TargetUserID != "" && req.TargetUserID != caller.UserID {
		if !caller.IsAdmin {
			return nil, fmt.Errorf("%w: only admins may open accounts for other users", apperrors.ErrForbidden)
		}
		if _, err := s.userRepo.FindUserByID(ctx, req.TargetUserID); err != nil {
			return nil, err
		}
		ownerID = req.TargetUserID
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		OwnerID:   ownerID,
		Type:      req.Type,
		Balance:   decimal.Zero,
		Currency:  currency,
		Status:    domain.StatusActive,
		OpenedAt:  now,
		UpdatedAt: now,
	}

	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		number, err := utils.GenerateAccountNumber()
		if err != nil {
			return nil, err
		}
		account.AccountNumber = number

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Account number collision, regenerating", slog.Int("attempt", attempt+1))
			if attempt == maxAccountNumberAttempts-1 {
				return nil, fmt.Errorf("failed to generate a unique account number: %w", err)
			}
			continue
		}
		return nil, err
	}

	// The opening deposit goes through the ledger commit so the balance and
	// its record land in the same DB transaction. The account is saved with a
	// zero balance above; if the commit fails, no funds exist without a record.
	if req.InitialDeposit.IsPositive() {
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			OperationRef:  uuid.NewString(),
			AccountID:     account.AccountID,
			UserID:        ownerID,
			Type:          domain.Deposit,
			Amount:        req.InitialDeposit,
			Currency:      account.Currency,
			Description:   "Initial deposit",
			Status:        domain.TxnCompleted,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		balances, err := s.transactionRepo.SaveEntry(ctx,
			[]domain.Transaction{txn},
			map[string]decimal.Decimal{account.AccountID: req.InitialDeposit},
			nil,
		)
		if err != nil {
			logger.Error("Failed to commit initial deposit",
				slog.String("error", err.Error()),
				slog.String("account_id", account.AccountID))
			return nil, fmt.Errorf("failed to commit initial deposit: %w", err)
		}
		account.Balance = balances[account.AccountID]
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("owner_id", ownerID))

	return &account, nil
}

// GetAccountByNumber retrieves an account the caller owns or administers.
func (s *AccountService) GetAccountByNumber(ctx context.Context, callerID string, accountNumber string) (*domain.Account, error) {
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
	return account, nil
}

// ListAccountsForUser retrieves the caller's own accounts, oldest first.
func (s *AccountService) ListAccountsForUser(ctx context.Context, callerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// ListAllAccounts retrieves every account, or one user's accounts when
// targetUserID is set. Admin only.
func (s *AccountService) ListAllAccounts(ctx context.Context, callerID string, targetUserID string, limit int, offset int) ([]domain.Account, error) {
	if _, err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return nil, err
	}
	if targetUserID != "" {
		return s.accountRepo.ListAccountsByOwner(ctx, targetUserID)
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// UpdateAccountStatus changes an account's lifecycle status. Admin only.
func (s *AccountService) UpdateAccountStatus(ctx context.Context, callerID string, accountNumber string, status domain.AccountStatus) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return err
	}
	if !domain.ValidAccountStatus(status) {
		return fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	if err := s.accountRepo.UpdateAccountStatus(ctx, account.AccountID, status, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("Account status updated",
		slog.String("account_number", accountNumber),
		slog.String("status", string(status)))
	return nil
}

// CloseAccount marks the caller's own account closed. Closed accounts refuse
// all further balance mutations but their history remains queryable.
func (s *AccountService) CloseAccount(ctx context.Context, callerID string, accountNumber string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	caller, err := fetchCaller(ctx, s.userRepo, callerID)
	if err != nil {
		return err
	}
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	if err := authorizeAccountAccess(caller, account); err != nil {
		return err
	}
	if account.Status == domain.StatusClosed {
		return fmt.Errorf("%w: account is already closed", apperrors.ErrConflict)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account balance must be zero before closing", apperrors.ErrConflict)
	}

	if err := s.accountRepo.UpdateAccountStatus(ctx, account.AccountID, domain.StatusClosed, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("Account closed", slog.String("account_number", accountNumber))
	return nil
}

// DeleteAccount removes an account entirely. Administrative correction only;
// the regular lifecycle ends at closed.
func (s *AccountService) DeleteAccount(ctx context.Context, callerID string, accountNumber string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return err
	}
	if err := s.accountRepo.DeleteAccount(ctx, accountNumber); err != nil {
		return err
	}

	logger.Info("Account deleted", slog.String("account_number", accountNumber))
	return nil
}
