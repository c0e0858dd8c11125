package services_test

import (
	"context"
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

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.TransactionSvcFacade

	user  domain.User
	admin domain.User
	acc   domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockUserRepo)

	suite.user = domain.User{UserID: uuid.NewString(), Email: "alice@example.com", Name: "Alice"}
	suite.admin = domain.User{UserID: uuid.NewString(), Email: "admin@example.com", Name: "Admin", IsAdmin: true}
	suite.acc = domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1111111111",
		OwnerID:       suite.user.UserID,
		Currency:      "USD",
		Status:        domain.StatusActive,
	}
}

func (suite *TransactionServiceTestSuite) expectCaller(user domain.User) {
	u := user
	suite.mockUserRepo.On("FindUserByID", mock.Anything, user.UserID).Return(&u, nil)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsByAccount_OwnerAllowed() {
	ctx := context.Background()
	suite.expectCaller(suite.user)
	suite.mockAccountRepo.On("FindAccountByNumber", mock.Anything, suite.acc.AccountNumber).Return(&suite.acc, nil)
	suite.mockTxnRepo.On("ListTransactionsByAccount", mock.Anything, suite.acc.AccountID, 10, 0).
		Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.ListTransactionsByAccount(ctx, suite.user.UserID, suite.acc.AccountNumber, dto.ListTransactionsParams{Limit: 10})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactionsByAccount_StrangerForbidden() {
	ctx := context.Background()
	stranger := domain.User{UserID: uuid.NewString(), Email: "mallory@example.com"}
	suite.expectCaller(stranger)
	suite.mockAccountRepo.On("FindAccountByNumber", mock.Anything, suite.acc.AccountNumber).Return(&suite.acc, nil)

	_, err := suite.service.ListTransactionsByAccount(ctx, stranger.UserID, suite.acc.AccountNumber, dto.ListTransactionsParams{Limit: 10})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactionsByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTaxTransaction_NegatesAmount() {
	ctx := context.Background()
	suite.expectCaller(suite.admin)
	suite.expectCaller(suite.user)
	suite.mockAccountRepo.On("ListAccountsByOwner", mock.Anything, suite.user.UserID).
		Return([]domain.Account{suite.acc}, nil)

	var saved domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Transaction)
		}).
		Return(nil).Once()

	txn, err := suite.service.CreateTaxTransaction(ctx, suite.admin.UserID, dto.CreateTaxRequest{
		UserID:      suite.user.UserID,
		Amount:      decimal.NewFromInt(30), // positive input still becomes a debit
		Currency:    "USD",
		Description: "Income tax 2025",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.Tax, txn.Type)
	suite.True(saved.Amount.Equal(decimal.NewFromInt(-30)))
	suite.Equal(suite.acc.AccountID, saved.AccountID)
}

func (suite *TransactionServiceTestSuite) TestCreateTaxTransaction_Backdated() {
	ctx := context.Background()
	suite.expectCaller(suite.admin)
	suite.expectCaller(suite.user)
	suite.mockAccountRepo.On("ListAccountsByOwner", mock.Anything, suite.user.UserID).
		Return([]domain.Account{suite.acc}, nil)

	backdate := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	var saved domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Transaction)
		}).
		Return(nil).Once()

	_, err := suite.service.CreateTaxTransaction(ctx, suite.admin.UserID, dto.CreateTaxRequest{
		UserID:      suite.user.UserID,
		Amount:      decimal.NewFromInt(-30),
		Currency:    "USD",
		Description: "Back tax",
		CreatedAt:   &backdate,
	})

	suite.Require().NoError(err)
	suite.True(saved.CreatedAt.Equal(backdate))
	suite.True(saved.Amount.Equal(decimal.NewFromInt(-30)))
}

func (suite *TransactionServiceTestSuite) TestCreateTaxTransaction_NonAdminForbidden() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	_, err := suite.service.CreateTaxTransaction(ctx, suite.user.UserID, dto.CreateTaxRequest{
		UserID:      suite.user.UserID,
		Amount:      decimal.NewFromInt(30),
		Currency:    "USD",
		Description: "Tax",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTaxTransactions_Batch() {
	ctx := context.Background()
	suite.expectCaller(suite.admin)
	suite.expectCaller(suite.user)
	suite.mockAccountRepo.On("ListAccountsByOwner", mock.Anything, suite.user.UserID).
		Return([]domain.Account{suite.acc}, nil)

	var saved []domain.Transaction
	suite.mockTxnRepo.On("SaveTransactions", mock.Anything, mock.AnythingOfType("[]domain.Transaction")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).([]domain.Transaction)
		}).
		Return(nil).Once()

	reqs := []dto.CreateTaxRequest{
		{UserID: suite.user.UserID, Amount: decimal.NewFromInt(10), Currency: "USD", Description: "Q1 tax"},
		{UserID: suite.user.UserID, Amount: decimal.NewFromInt(20), Currency: "USD", Description: "Q2 tax"},
	}
	txns, err := suite.service.CreateTaxTransactions(ctx, suite.admin.UserID, reqs)

	suite.Require().NoError(err)
	suite.Len(txns, 2)
	suite.Require().Len(saved, 2)
	suite.True(saved[0].Amount.IsNegative())
	suite.True(saved[1].Amount.IsNegative())
}

func (suite *TransactionServiceTestSuite) TestCreateTaxTransactions_EmptyBatch() {
	ctx := context.Background()
	suite.expectCaller(suite.admin)

	_, err := suite.service.CreateTaxTransactions(ctx, suite.admin.UserID, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_AdminOnly() {
	ctx := context.Background()
	suite.expectCaller(suite.user)

	err := suite.service.DeleteTransaction(ctx, suite.user.UserID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
