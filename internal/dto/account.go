package dto

import (
	"time"

	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
// TargetUserID is only honored for admin callers opening an account on
// behalf of another user.
type CreateAccountRequest struct {
	Type           domain.AccountType `json:"type" binding:"required,oneof=savings checking business fixed"`
	InitialDeposit decimal.Decimal    `json:"initialDeposit"`
	Currency       string             `json:"currency"`
	TargetUserID   string             `json:"userID"`
}

// UpdateAccountStatusRequest defines the admin status-change payload.
type UpdateAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required,oneof=active inactive suspended blocked closed"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	OpenedDate    time.Time       `json:"opened_date"`
	OwnerID       string          `json:"ownerID,omitempty"` // populated for admin views
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account, includeOwner bool) AccountResponse {
	resp := AccountResponse{
		AccountNumber: acc.AccountNumber,
		AccountType:   string(acc.Type),
		Balance:       acc.Balance,
		Currency:      acc.Currency,
		Status:        string(acc.Status),
		OpenedDate:    acc.OpenedAt,
	}
	if includeOwner {
		resp.OwnerID = acc.OwnerID
	}
	return resp
}

// ToListAccountResponse converts a slice of domain accounts.
func ToListAccountResponse(accounts []domain.Account, includeOwner bool) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i], includeOwner)
	}
	return res
}

// ListAccountsParams defines query parameters for admin account listings.
type ListAccountsParams struct {
	AdminView bool   `form:"adminView"`
	UserID    string `form:"userId"`
	Limit     int    `form:"limit,default=50"`
	Offset    int    `form:"offset,default=0"`
}
