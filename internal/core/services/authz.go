package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/corebank/ledgerd/internal/apperrors"
	"github.com/corebank/ledgerd/internal/core/domain"
	portsrepo "github.com/corebank/ledgerd/internal/core/ports/repositories"
)

// fetchCaller resolves the authenticated caller. A token whose subject no
// longer exists is treated as forbidden, not as a missing resource.
func fetchCaller(ctx context.Context, userRepo portsrepo.UserReader, callerID string) (*domain.User, error) {
	caller, err := userRepo.FindUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown caller", apperrors.ErrForbidden)
		}
		return nil, err
	}
	return caller, nil
}

// requireAdmin resolves the caller and rejects non-admins.
func requireAdmin(ctx context.Context, userRepo portsrepo.UserReader, callerID string) (*domain.User, error) {
	caller, err := fetchCaller(ctx, userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin {
		return nil, fmt.Errorf("%w: admin required", apperrors.ErrForbidden)
	}
	return caller, nil
}

// authorizeAccountAccess permits the account owner and admins, nobody else.
func authorizeAccountAccess(caller *domain.User, account *domain.Account) error {
	if caller.UserID == account.OwnerID || caller.IsAdmin {
		return nil
	}
	return fmt.Errorf("%w: not the account owner", apperrors.ErrForbidden)
}
