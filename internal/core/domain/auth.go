package domain

import "time"

// AuthContext carries the identity attached to an authenticated request
type AuthContext struct {
	Subject   string    `json:"subject"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the context's token lifetime has passed.
func (c *AuthContext) Expired() bool {
	return time.Now().After(c.ExpiresAt)
}

// TokenRequest exchanges the admin key for a bearer token
type TokenRequest struct {
	AdminKey string `json:"admin_key"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
