package services

import (
	"context"
	"time"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

const adminTokenTTL = 12 * time.Hour

// authService implements the AuthService interface.
// There is a single admin identity; tokens exist so the admin key is
// presented once per session rather than on every request.
type authService struct {
	adapter driven.AuthAdapter
}

// NewAuthService creates a new AuthService
func NewAuthService(adapter driven.AuthAdapter) driving.AuthService {
	return &authService{adapter: adapter}
}

// IssueToken exchanges the configured admin key for a bearer token
func (s *authService) IssueToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResponse, error) {
	if !s.adapter.VerifyAdminKey(req.AdminKey) {
		return nil, domain.ErrUnauthorized
	}

	token, expiresAt, err := s.adapter.GenerateToken("admin", adminTokenTTL)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken checks a bearer token and returns its auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	authCtx, err := s.adapter.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if authCtx.Expired() {
		return nil, domain.ErrTokenExpired
	}
	return authCtx, nil
}
