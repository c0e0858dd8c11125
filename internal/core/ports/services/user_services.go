package services

import (
	"context"

	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/corebank/ledgerd/internal/dto"
)

// UserSvcFacade exposes user registration, authentication, and lookups.
type UserSvcFacade interface {
	// Register creates a new user with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies credentials and returns the user on success.
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)

	// GetUserByID retrieves a user. Callers may fetch themselves; admins may
	// fetch anyone.
	GetUserByID(ctx context.Context, callerID string, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated user listing. Admin only.
	ListUsers(ctx context.Context, callerID string, params dto.ListUsersParams) ([]domain.User, error)

	// EnsureAdmin promotes the user with the given email to admin. Run once at
	// deployment time, not per request.
	EnsureAdmin(ctx context.Context, email string) error
}

// TokenSvc issues bearer tokens for authenticated users.
type TokenSvc interface {
	// GenerateToken returns a signed JWT whose subject is the user ID.
	GenerateToken(userID string) (string, error)
}
