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
	"github.com/shopspring/decimal"
)

// LedgerService implements deposits, withdrawals, and transfers on top of the
// atomic commit point exposed by the transaction repository. The service does
// the policy checks (ownership, status, positive amount); the repository does
// the authoritative balance check under row locks.
type LedgerService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
}

func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) *LedgerService {
	return &LedgerService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// resolveAccount loads an account by number and verifies the caller may
// operate on it.
func (s *LedgerService) resolveAccount(ctx context.Context, callerID string, accountNumber string) (*domain.Account, error) {
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

// Deposit credits amount to the account. Deposits are accepted for every
// status except closed; a blocked account may still receive money.
func (s *LedgerService) Deposit(ctx context.Context, callerID string, accountNumber string, req dto.DepositRequest) (*dto.MovementResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.resolveAccount(ctx, callerID, accountNumber)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.StatusClosed {
		return nil, fmt.Errorf("%w: cannot deposit into a closed account", apperrors.ErrAccountClosed)
	}

	description := req.Description
	if description == "" {
		description = "Deposit"
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OperationRef:  uuid.NewString(),
		AccountID:     account.AccountID,
		UserID:        account.OwnerID,
		Type:          domain.Deposit,
		Amount:        req.Amount,
		Currency:      account.Currency,
		Description:   description,
		Status:        domain.TxnCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	balances, err := s.transactionRepo.SaveEntry(ctx,
		[]domain.Transaction{txn},
		map[string]decimal.Decimal{account.AccountID: req.Amount},
		nil,
	)
	if err != nil {
		logger.Error("Deposit failed", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		return nil, err
	}

	logger.Info("Deposit committed",
		slog.String("account_number", accountNumber),
		slog.String("amount", req.Amount.String()),
		slog.String("transaction_id", txn.TransactionID))

	return &dto.MovementResult{
		NewBalance:  balances[account.AccountID],
		Transaction: txn,
	}, nil
}

// Withdraw debits amount from the account. Closed and blocked accounts refuse
// outgoing movement; the balance check is re-run under row locks so two
// concurrent withdrawals can never both succeed on the same funds.
func (s *LedgerService) Withdraw(ctx context.Context, callerID string, accountNumber string, req dto.WithdrawRequest) (*dto.MovementResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.resolveAccount(ctx, callerID, accountNumber)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.StatusClosed {
		return nil, fmt.Errorf("%w: cannot withdraw from a closed account", apperrors.ErrAccountClosed)
	}
	if account.Status == domain.StatusBlocked {
		return nil, fmt.Errorf("%w: account is blocked", apperrors.ErrAccountBlocked)
	}
	// Fast-path rejection; the commit re-checks under lock.
	if account.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, account.Balance.String(), req.Amount.String())
	}

	description := req.Description
	if description == "" {
		description = "Withdrawal"
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OperationRef:  uuid.NewString(),
		AccountID:     account.AccountID,
		UserID:        account.OwnerID,
		Type:          domain.Withdrawal,
		Amount:        req.Amount.Neg(),
		Currency:      account.Currency,
		Description:   description,
		Status:        domain.TxnCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	balances, err := s.transactionRepo.SaveEntry(ctx,
		[]domain.Transaction{txn},
		map[string]decimal.Decimal{account.AccountID: req.Amount.Neg()},
		nil,
	)
	if err != nil {
		logger.Error("Withdrawal failed", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		return nil, err
	}

	logger.Info("Withdrawal committed",
		slog.String("account_number", accountNumber),
		slog.String("amount", req.Amount.String()),
		slog.String("transaction_id", txn.TransactionID))

	return &dto.MovementResult{
		NewBalance:  balances[account.AccountID],
		Transaction: txn,
	}, nil
}

// Transfer moves amount from the caller's account to the destination account.
// It records a debit leg and a credit leg sharing one operation reference and
// notifies the recipient, all in the same commit as the balance updates.
func (s *LedgerService) Transfer(ctx context.Context, callerID string, sourceAccountNumber string, req dto.TransferRequest) (*dto.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.ToAccount == sourceAccountNumber {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	source, err := s.resolveAccount(ctx, callerID, sourceAccountNumber)
	if err != nil {
		return nil, err
	}
	if source.Status == domain.StatusClosed {
		return nil, fmt.Errorf("%w: source account is closed", apperrors.ErrAccountClosed)
	}
	if source.Status == domain.StatusBlocked {
		return nil, fmt.Errorf("%w: source account is blocked", apperrors.ErrAccountBlocked)
	}

	destination, err := s.accountRepo.FindAccountByNumber(ctx, req.ToAccount)
	if err != nil {
		return nil, err
	}
	if destination.Status == domain.StatusClosed {
		return nil, fmt.Errorf("%w: destination account is closed", apperrors.ErrAccountClosed)
	}
	if destination.Status == domain.StatusBlocked {
		return nil, fmt.Errorf("%w: destination account is blocked", apperrors.ErrAccountBlocked)
	}
	if source.Currency != destination.Currency {
		return nil, fmt.Errorf("%w: currency mismatch between accounts", apperrors.ErrValidation)
	}
	if source.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, source.Balance.String(), req.Amount.String())
	}

	debitDescription := req.Description
	if debitDescription == "" {
		debitDescription = fmt.Sprintf("Transfer to %s", destination.AccountNumber)
	}
	creditDescription := fmt.Sprintf("Transfer from %s", source.AccountNumber)

	now := time.Now().UTC()
	operationRef := uuid.NewString()
	debitLeg := domain.Transaction{
		TransactionID: uuid.NewString(),
		OperationRef:  operationRef,
		AccountID:     source.AccountID,
		UserID:        source.OwnerID,
		Type:          domain.Transfer,
		Amount:        req.Amount.Neg(),
		Currency:      source.Currency,
		Description:   debitDescription,
		Status:        domain.TxnCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	creditLeg := domain.Transaction{
		TransactionID: uuid.NewString(),
		OperationRef:  operationRef,
		AccountID:     destination.AccountID,
		UserID:        destination.OwnerID,
		Type:          domain.Transfer,
		Amount:        req.Amount,
		Currency:      destination.Currency,
		Description:   creditDescription,
		Status:        domain.TxnCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	notification := &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         destination.OwnerID,
		Title:          "Transfer received",
		Message:        fmt.Sprintf("You received %s %s from account %s", req.Amount.String(), source.Currency, source.AccountNumber),
		Read:           false,
		CreatedAt:      now,
	}

	balances, err := s.transactionRepo.SaveEntry(ctx,
		[]domain.Transaction{debitLeg, creditLeg},
		map[string]decimal.Decimal{
			source.AccountID:      req.Amount.Neg(),
			destination.AccountID: req.Amount,
		},
		notification,
	)
	if err != nil {
		logger.Error("Transfer failed",
			slog.String("error", err.Error()),
			slog.String("source_account", sourceAccountNumber),
			slog.String("destination_account", req.ToAccount))
		return nil, err
	}

	logger.Info("Transfer committed",
		slog.String("source_account", sourceAccountNumber),
		slog.String("destination_account", req.ToAccount),
		slog.String("amount", req.Amount.String()),
		slog.String("operation_ref", operationRef))

	return &dto.TransferResult{
		NewSourceBalance:      balances[source.AccountID],
		NewDestinationBalance: balances[destination.AccountID],
		DebitLeg:              debitLeg,
		CreditLeg:             creditLeg,
	}, nil
}
