package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
)

// Ensure Adapter implements AuthAdapter
var _ driven.AuthAdapter = (*Adapter)(nil)

// jwtClaims wraps domain.AuthContext for JWT compatibility
type jwtClaims struct {
	jwt.RegisteredClaims
}

// Adapter handles authentication operations using bcrypt and JWT.
// The admin key is stored as a bcrypt hash; tokens are HS256 JWTs.
type Adapter struct {
	jwtSecret    []byte
	adminKeyHash []byte
}

// NewAdapter creates a new auth adapter. adminKeyHash is a bcrypt hash
// of the admin key, typically produced with HashKey at deploy time.
func NewAdapter(jwtSecret, adminKeyHash string) *Adapter {
	return &Adapter{
		jwtSecret:    []byte(jwtSecret),
		adminKeyHash: []byte(adminKeyHash),
	}
}

// HashKey generates a bcrypt hash for an admin key
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAdminKey checks a presented key against the configured hash
func (a *Adapter) VerifyAdminKey(key string) bool {
	err := bcrypt.CompareHashAndPassword(a.adminKeyHash, []byte(key))
	return err == nil
}

// GenerateToken creates a signed JWT for a subject with the given TTL
func (a *Adapter) GenerateToken(subject string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	jc := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jc)
	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken validates a JWT and extracts its auth context
func (a *Adapter) ParseToken(tokenString string) (*domain.AuthContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	ac := &domain.AuthContext{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		ac.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		ac.ExpiresAt = claims.ExpiresAt.Time
	}
	return ac, nil
}
