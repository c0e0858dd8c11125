package services

import (
	"time"

	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/internal/utils"
)

// TokenService issues signed bearer tokens.
type TokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

func NewTokenService(secret string, expiry time.Duration, issuer string) *TokenService {
	return &TokenService{secret: secret, expiry: expiry, issuer: issuer}
}

var _ portssvc.TokenSvc = (*TokenService)(nil)

// GenerateToken returns a signed JWT whose subject is the user ID.
func (s *TokenService) GenerateToken(userID string) (string, error) {
	return utils.GenerateJWT(userID, s.secret, s.expiry, s.issuer)
}
