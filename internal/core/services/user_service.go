package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/corebank/ledgerd/internal/apperrors"
	"github.com/corebank/ledgerd/internal/core/domain"
	portsrepo "github.com/corebank/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/internal/dto"
	"github.com/corebank/ledgerd/internal/middleware"
	"github.com/corebank/ledgerd/internal/utils"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// Register creates a new user with a bcrypt-hashed password. Emails are
// stored lowercased; a duplicate email surfaces as apperrors.ErrDuplicate.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Authenticate verifies credentials and returns the user on success. Both an
// unknown email and a wrong password yield the same forbidden error so the
// response does not reveal which part was wrong.
func (s *UserService) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

// GetUserByID retrieves a user. Callers may fetch themselves; admins anyone.
func (s *UserService) GetUserByID(ctx context.Context, callerID string, userID string) (*domain.User, error) {
	if callerID != userID {
		if _, err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
			return nil, err
		}
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves a paginated user listing. Admin only.
func (s *UserService) ListUsers(ctx context.Context, callerID string, params dto.ListUsersParams) ([]domain.User, error) {
	if _, err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return nil, err
	}
	return s.userRepo.ListUsers(ctx, params.Limit, params.Offset)
}

// EnsureAdmin promotes the user with the given email to admin. Runs once at
// startup; a missing user is logged, not fatal, so the service can boot
// before the admin has registered.
func (s *UserService) EnsureAdmin(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if email == "" {
		return nil
	}

	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Admin user not registered yet, skipping promotion", slog.String("email", email))
			return nil
		}
		return err
	}
	if user.IsAdmin {
		return nil
	}

	if err := s.userRepo.SetAdmin(ctx, user.UserID, true, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("Admin user promoted", slog.String("user_id", user.UserID))
	return nil
}
