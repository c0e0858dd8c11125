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

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.AccountSvcFacade

	user  domain.User
	admin domain.User
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockTxnRepo, suite.mockUserRepo)

	suite.user = domain.User{UserID: uuid.NewString(), Email: "alice@example.com", Name: "Alice"}
	suite.admin = domain.User{UserID: uuid.NewString(), Email: "admin@example.com", Name: "Admin", IsAdmin: true}
}

func (suite *AccountServiceTestSuite) expectCaller(user domain.User) {
	u := user
	suite.mockUserRepo.On("FindUserByID", mock.Anything, user.UserID).Return(&u, nil)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).
		Return(nil).Once()

	var legs []domain.Transaction
	var changes map[string]decimal.Decimal
	committed := map[string]decimal.Decimal{}
	suite.mockTxnRepo.On("SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			legs = args.Get(1).([]domain.Transaction)
			changes = args.Get(2).(map[string]decimal.Decimal)
			for id, delta := range changes {
				committed[id] = delta
			}
		}).
		Return(committed, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.user.UserID, dto.CreateAccountRequest{
		Type:           domain.Savings,
		InitialDeposit: decimal.NewFromInt(50),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(suite.user.UserID, account.OwnerID)
	suite.Equal(domain.StatusActive, account.Status)
	suite.Equal("USD", account.Currency)
	suite.Len(account.AccountNumber, 10)
	suite.NotEqual(byte('0'), account.AccountNumber[0])

	// The account row is saved at zero; the opening balance arrives through
	// the same commit as its transaction record.
	suite.True(saved.Balance.IsZero())
	suite.Require().Len(legs, 1)
	suite.Equal(domain.Deposit, legs[0].Type)
	suite.Equal("Initial deposit", legs[0].Description)
	suite.True(legs[0].Amount.Equal(decimal.NewFromInt(50)))
	suite.True(changes[account.AccountID].Equal(decimal.NewFromInt(50)))
	suite.True(account.Balance.Equal(decimal.NewFromInt(50)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NoInitialDepositRecord() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.user.UserID, dto.CreateAccountRequest{
		Type: domain.Checking,
	})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// An opening deposit that cannot be committed fails the whole creation call;
// the account row is already persisted at zero, so no balance can exist
// without its ledger record.
func (suite *AccountServiceTestSuite) TestCreateAccount_InitialDepositCommitFailure() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).
		Return(nil).Once()
	suite.mockTxnRepo.On("SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()

	account, err := suite.service.CreateAccount(ctx, suite.user.UserID, dto.CreateAccountRequest{
		Type:           domain.Savings,
		InitialDeposit: decimal.NewFromInt(50),
	})

	suite.Require().Error(err)
	suite.Nil(account)
	suite.True(saved.Balance.IsZero())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RetriesOnNumberCollision() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	var numbers []string
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			numbers = append(numbers, args.Get(1).(domain.Account).AccountNumber)
		}).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			numbers = append(numbers, args.Get(1).(domain.Account).AccountNumber)
		}).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.user.UserID, dto.CreateAccountRequest{
		Type: domain.Checking,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Require().Len(numbers, 2)
	suite.NotEqual(numbers[0], numbers[1])
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	_, err := suite.service.CreateAccount(ctx, suite.user.UserID, dto.CreateAccountRequest{
		Type: domain.AccountType("bitcoin"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeInitialDeposit() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	_, err := suite.service.CreateAccount(ctx, suite.user.UserID, dto.CreateAccountRequest{
		Type:           domain.Savings,
		InitialDeposit: decimal.NewFromInt(-5),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ForOtherUserRequiresAdmin() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	_, err := suite.service.CreateAccount(ctx, suite.user.UserID, dto.CreateAccountRequest{
		Type:         domain.Savings,
		TargetUserID: uuid.NewString(),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_AdminForTargetUser() {
	ctx := context.Background()
	suite.expectCaller(suite.admin)

	target := domain.User{UserID: uuid.NewString(), Email: "carol@example.com", Name: "Carol"}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, target.UserID).Return(&target, nil)
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.Anything).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.admin.UserID, dto.CreateAccountRequest{
		Type:         domain.Business,
		TargetUserID: target.UserID,
	})

	suite.Require().NoError(err)
	suite.Equal(target.UserID, account.OwnerID)
}

func (suite *AccountServiceTestSuite) TestCloseAccount_NonZeroBalance() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	acc := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1111111111",
		OwnerID:       suite.user.UserID,
		Balance:       decimal.NewFromInt(25),
		Status:        domain.StatusActive,
	}
	suite.mockAccountRepo.On("FindAccountByNumber", mock.Anything, acc.AccountNumber).Return(&acc, nil)

	err := suite.service.CloseAccount(ctx, suite.user.UserID, acc.AccountNumber)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCloseAccount_Success() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	acc := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1111111111",
		OwnerID:       suite.user.UserID,
		Balance:       decimal.Zero,
		Status:        domain.StatusActive,
	}
	suite.mockAccountRepo.On("FindAccountByNumber", mock.Anything, acc.AccountNumber).Return(&acc, nil)
	suite.mockAccountRepo.On("UpdateAccountStatus", mock.Anything, acc.AccountID, domain.StatusClosed, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CloseAccount(ctx, suite.user.UserID, acc.AccountNumber)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatus_NonAdminForbidden() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	err := suite.service.UpdateAccountStatus(ctx, suite.user.UserID, "1111111111", domain.StatusBlocked)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestListAllAccounts_NonAdminForbidden() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	_, err := suite.service.ListAllAccounts(ctx, suite.user.UserID, "", 50, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAllAccounts_AdminFiltersByOwner() {
	ctx := context.Background()
	suite.expectCaller(suite.admin)

	targetID := uuid.NewString()
	owned := []domain.Account{{AccountID: uuid.NewString(), OwnerID: targetID, OpenedAt: time.Now()}}
	suite.mockAccountRepo.On("ListAccountsByOwner", mock.Anything, targetID).Return(owned, nil).Once()

	accounts, err := suite.service.ListAllAccounts(ctx, suite.admin.UserID, targetID, 50, 0)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
