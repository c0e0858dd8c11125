package mapping

import (
	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/corebank/ledgerd/internal/models"
)

// ToModelUser converts a domain.User to its DB row representation.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		IsAdmin:      d.IsAdmin,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainUser converts a DB row to the domain representation.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToDomainUserSlice converts a slice of DB rows.
func ToDomainUserSlice(ms []models.User) []domain.User {
	out := make([]domain.User, len(ms))
	for i, m := range ms {
		out[i] = ToDomainUser(m)
	}
	return out
}
