package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corebank/ledgerd/internal/apperrors"
	"github.com/corebank/ledgerd/internal/core/domain"
	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/internal/core/services"
	"github.com/corebank/ledgerd/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.LedgerSvcFacade

	owner      domain.User
	otherOwner domain.User
	admin      domain.User
	sourceAcc  domain.Account
	destAcc    domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockTxnRepo, suite.mockUserRepo)

	suite.owner = domain.User{UserID: uuid.NewString(), Email: "alice@example.com", Name: "Alice"}
	suite.otherOwner = domain.User{UserID: uuid.NewString(), Email: "bob@example.com", Name: "Bob"}
	suite.admin = domain.User{UserID: uuid.NewString(), Email: "admin@example.com", Name: "Admin", IsAdmin: true}

	suite.sourceAcc = domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1111111111",
		OwnerID:       suite.owner.UserID,
		Type:          domain.Checking,
		Balance:       decimal.NewFromInt(100),
		Currency:      "USD",
		Status:        domain.StatusActive,
		OpenedAt:      time.Now(),
	}
	suite.destAcc = domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "2222222222",
		OwnerID:       suite.otherOwner.UserID,
		Type:          domain.Savings,
		Balance:       decimal.NewFromInt(10),
		Currency:      "USD",
		Status:        domain.StatusActive,
		OpenedAt:      time.Now(),
	}
}

func (suite *LedgerServiceTestSuite) expectCaller(user domain.User) {
	u := user
	suite.mockUserRepo.On("FindUserByID", mock.Anything, user.UserID).Return(&u, nil)
}

func (suite *LedgerServiceTestSuite) expectAccount(acc domain.Account) {
	a := acc
	suite.mockAccountRepo.On("FindAccountByNumber", mock.Anything, acc.AccountNumber).Return(&a, nil)
}

// --- Deposit ---

func (suite *LedgerServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)

	suite.mockTxnRepo.On("SaveEntry", mock.Anything,
		mock.AnythingOfType("[]domain.Transaction"),
		mock.AnythingOfType("map[string]decimal.Decimal"),
		(*domain.Notification)(nil),
	).Return(map[string]decimal.Decimal{suite.sourceAcc.AccountID: decimal.NewFromInt(140)}, nil).Once()

	result, err := suite.service.Deposit(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.DepositRequest{
		Amount: decimal.NewFromInt(40),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.NewBalance.Equal(decimal.NewFromInt(140)))
	suite.Equal(domain.Deposit, result.Transaction.Type)
	suite.True(result.Transaction.Amount.Equal(decimal.NewFromInt(40)))
	suite.Equal(suite.sourceAcc.AccountID, result.Transaction.AccountID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeposit_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.Deposit(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.DepositRequest{
		Amount: decimal.Zero,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeposit_ClosedAccount() {
	ctx := context.Background()
	suite.sourceAcc.Status = domain.StatusClosed
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)

	_, err := suite.service.Deposit(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.DepositRequest{
		Amount: decimal.NewFromInt(40),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountClosed)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeposit_BlockedAccountStillAccepts() {
	ctx := context.Background()
	suite.sourceAcc.Status = domain.StatusBlocked
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)

	suite.mockTxnRepo.On("SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]decimal.Decimal{suite.sourceAcc.AccountID: decimal.NewFromInt(140)}, nil).Once()

	result, err := suite.service.Deposit(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.DepositRequest{
		Amount: decimal.NewFromInt(40),
	})

	suite.Require().NoError(err)
	suite.True(result.NewBalance.Equal(decimal.NewFromInt(140)))
}

func (suite *LedgerServiceTestSuite) TestDeposit_NotOwnerForbidden() {
	ctx := context.Background()
	suite.expectCaller(suite.otherOwner)
	suite.expectAccount(suite.sourceAcc)

	_, err := suite.service.Deposit(ctx, suite.otherOwner.UserID, suite.sourceAcc.AccountNumber, dto.DepositRequest{
		Amount: decimal.NewFromInt(40),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Withdraw ---

func (suite *LedgerServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)

	var capturedLegs []domain.Transaction
	var capturedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedLegs = args.Get(1).([]domain.Transaction)
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(map[string]decimal.Decimal{suite.sourceAcc.AccountID: decimal.NewFromInt(60)}, nil).Once()

	result, err := suite.service.Withdraw(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.WithdrawRequest{
		Amount: decimal.NewFromInt(40),
	})

	suite.Require().NoError(err)
	suite.True(result.NewBalance.Equal(decimal.NewFromInt(60)))
	suite.Equal(domain.Withdrawal, result.Transaction.Type)
	suite.True(result.Transaction.Amount.Equal(decimal.NewFromInt(-40)))

	suite.Require().Len(capturedLegs, 1)
	suite.True(capturedLegs[0].Amount.IsNegative())
	suite.True(capturedChanges[suite.sourceAcc.AccountID].Equal(decimal.NewFromInt(-40)))
}

func (suite *LedgerServiceTestSuite) TestWithdraw_InsufficientFunds() {
	ctx := context.Background()
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)

	_, err := suite.service.Withdraw(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.WithdrawRequest{
		Amount: decimal.NewFromInt(150),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestWithdraw_BlockedAccount() {
	ctx := context.Background()
	suite.sourceAcc.Status = domain.StatusBlocked
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)

	_, err := suite.service.Withdraw(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.WithdrawRequest{
		Amount: decimal.NewFromInt(40),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountBlocked)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)
	suite.expectAccount(suite.destAcc)

	var capturedLegs []domain.Transaction
	var capturedChanges map[string]decimal.Decimal
	var capturedNotification *domain.Notification
	suite.mockTxnRepo.On("SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedLegs = args.Get(1).([]domain.Transaction)
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
			capturedNotification = args.Get(3).(*domain.Notification)
		}).
		Return(map[string]decimal.Decimal{
			suite.sourceAcc.AccountID: decimal.NewFromInt(60),
			suite.destAcc.AccountID:   decimal.NewFromInt(50),
		}, nil).Once()

	result, err := suite.service.Transfer(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.TransferRequest{
		ToAccount: suite.destAcc.AccountNumber,
		Amount:    decimal.NewFromInt(40),
	})

	suite.Require().NoError(err)
	suite.True(result.NewSourceBalance.Equal(decimal.NewFromInt(60)))
	suite.True(result.NewDestinationBalance.Equal(decimal.NewFromInt(50)))

	// Two legs sharing one operation reference, summing to zero.
	suite.Require().Len(capturedLegs, 2)
	suite.Equal(capturedLegs[0].OperationRef, capturedLegs[1].OperationRef)
	suite.True(capturedLegs[0].Amount.Add(capturedLegs[1].Amount).IsZero())
	suite.True(capturedChanges[suite.sourceAcc.AccountID].Equal(decimal.NewFromInt(-40)))
	suite.True(capturedChanges[suite.destAcc.AccountID].Equal(decimal.NewFromInt(40)))

	// Recipient is notified about the incoming transfer.
	suite.Require().NotNil(capturedNotification)
	suite.Equal(suite.otherOwner.UserID, capturedNotification.UserID)
	suite.Contains(capturedNotification.Message, suite.sourceAcc.AccountNumber)
}

func (suite *LedgerServiceTestSuite) TestTransfer_AdminCanMoveOthersFunds() {
	ctx := context.Background()
	suite.expectCaller(suite.admin)
	suite.expectAccount(suite.sourceAcc)
	suite.expectAccount(suite.destAcc)

	suite.mockTxnRepo.On("SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]decimal.Decimal{
			suite.sourceAcc.AccountID: decimal.NewFromInt(60),
			suite.destAcc.AccountID:   decimal.NewFromInt(50),
		}, nil).Once()

	_, err := suite.service.Transfer(ctx, suite.admin.UserID, suite.sourceAcc.AccountNumber, dto.TransferRequest{
		ToAccount: suite.destAcc.AccountNumber,
		Amount:    decimal.NewFromInt(40),
	})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_SourceBlocked() {
	ctx := context.Background()
	suite.sourceAcc.Status = domain.StatusBlocked
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)

	_, err := suite.service.Transfer(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.TransferRequest{
		ToAccount: suite.destAcc.AccountNumber,
		Amount:    decimal.NewFromInt(40),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountBlocked)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_SameAccount() {
	ctx := context.Background()

	_, err := suite.service.Transfer(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.TransferRequest{
		ToAccount: suite.sourceAcc.AccountNumber,
		Amount:    decimal.NewFromInt(40),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestTransfer_DestinationNotFound() {
	ctx := context.Background()
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)
	suite.mockAccountRepo.On("FindAccountByNumber", mock.Anything, "9999999999").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.Transfer(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.TransferRequest{
		ToAccount: "9999999999",
		Amount:    decimal.NewFromInt(40),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_CurrencyMismatch() {
	ctx := context.Background()
	suite.destAcc.Currency = "EUR"
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)
	suite.expectAccount(suite.destAcc)

	_, err := suite.service.Transfer(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.TransferRequest{
		ToAccount: suite.destAcc.AccountNumber,
		Amount:    decimal.NewFromInt(40),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestTransfer_CommitFailureReportsNoSuccess() {
	ctx := context.Background()
	suite.expectCaller(suite.owner)
	suite.expectAccount(suite.sourceAcc)
	suite.expectAccount(suite.destAcc)

	commitErr := errors.New("deadlock detected")
	suite.mockTxnRepo.On("SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, commitErr).Once()

	result, err := suite.service.Transfer(ctx, suite.owner.UserID, suite.sourceAcc.AccountNumber, dto.TransferRequest{
		ToAccount: suite.destAcc.AccountNumber,
		Amount:    decimal.NewFromInt(40),
	})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, commitErr)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
