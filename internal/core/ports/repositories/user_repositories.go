package repositories

import (
	"context"
	"time"

	"github.com/corebank/ledgerd/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users (admin view).
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate if the email
	// is already registered.
	SaveUser(ctx context.Context, user domain.User) error

	// SetAdmin flips the admin flag on a user (deploy-time seed path).
	SetAdmin(ctx context.Context, userID string, isAdmin bool, now time.Time) error
}

// UserRepositoryFacade combines the user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
