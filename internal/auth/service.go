package auth

import (
	"context"
	"time"

	"github.com/trunorth/platform/internal/config"
	"github.com/trunorth/platform/internal/identity"
)

// Service issues and refreshes token pairs for authenticated users.
type Service struct {
	cfg    config.Config
	idRepo identity.Repository
}

// NewService builds the token service.
func NewService(cfg config.Config, idRepo identity.Repository) *Service {
	return &Service{cfg: cfg, idRepo: idRepo}
}

// TokenPair bundles the credentials returned after login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Issue creates an access/refresh token pair for the user.
func (s *Service) Issue(user identity.User) (TokenPair, error) {
	access, err := Sign(newClaims(user.ID, user.Email, user.Name, user.Role, s.cfg.AccessTokenTTL), []byte(s.cfg.JWTSecret))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := Sign(newClaims(user.ID, "", "", user.Role, s.cfg.RefreshTokenTTL), []byte(s.cfg.RefreshSecret))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTokenTTL / time.Second),
	}, nil
}

// Refresh verifies the refresh token and issues a fresh pair. The user record
// is re-read so role changes take effect on rotation.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := Verify(refreshToken, []byte(s.cfg.RefreshSecret))
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}
	user, err := s.idRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}
	return s.Issue(user)
}
