package driven

import (
	"time"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// AuthAdapter handles authentication cryptographic operations.
// Admin access uses a single configured key; tokens are short-lived
// bearer credentials derived from it.
type AuthAdapter interface {
	// VerifyAdminKey checks a presented key against the configured hash
	VerifyAdminKey(key string) bool

	// GenerateToken issues a signed bearer token for a subject
	GenerateToken(subject string, ttl time.Duration) (string, time.Time, error)

	// ParseToken validates a bearer token and returns its context
	ParseToken(token string) (*domain.AuthContext, error)
}
