package driving

import (
	"context"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// AuthService guards the admin endpoints (warm, import)
type AuthService interface {
	// IssueToken exchanges the configured admin key for a bearer token
	IssueToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResponse, error)

	// ValidateToken checks a bearer token and returns its auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
