package mapping

import (
	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/corebank/ledgerd/internal/models"
)

// ToModelAccount converts a domain.Account to its DB row representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		AccountNumber: d.AccountNumber,
		OwnerID:       d.OwnerID,
		Type:          models.AccountType(d.Type),
		Balance:       d.Balance,
		Currency:      d.Currency,
		Status:        models.AccountStatus(d.Status),
		OpenedAt:      d.OpenedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainAccount converts a DB row to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		OwnerID:       m.OwnerID,
		Type:          domain.AccountType(m.Type),
		Balance:       m.Balance,
		Currency:      m.Currency,
		Status:        domain.AccountStatus(m.Status),
		OpenedAt:      m.OpenedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainAccountSlice converts a slice of DB rows.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}
