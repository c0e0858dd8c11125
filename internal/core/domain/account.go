package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the banking product type of an account.
type AccountType string

const (
	Savings  AccountType = "savings"
	Checking AccountType = "checking"
	Business AccountType = "business"
	Fixed    AccountType = "fixed"
)

// ValidAccountType reports whether t is one of the supported account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Savings, Checking, Business, Fixed:
		return true
	}
	return false
}

// AccountStatus is the lifecycle state of an account.
// Blocked accounts refuse outgoing movement but still accept deposits;
// closed accounts refuse all balance mutations.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusInactive  AccountStatus = "inactive"
	StatusSuspended AccountStatus = "suspended"
	StatusBlocked   AccountStatus = "blocked"
	StatusClosed    AccountStatus = "closed"
)

// ValidAccountStatus reports whether s is a known account status.
func ValidAccountStatus(s AccountStatus) bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusBlocked, StatusClosed:
		return true
	}
	return false
}

// Account represents a customer bank account. Balance is mutated only
// through the ledger commit path; OwnerID is immutable after creation.
type Account struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"` // 10-digit external identifier
	OwnerID       string          `json:"ownerID"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        AccountStatus   `json:"status"`
	OpenedAt      time.Time       `json:"openedAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
