package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. These provide sensible security defaults but
// can be overridden per-service via configuration.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// RefreshTokenType is the token_type claim value stamped into refresh
// tokens. Verification rejects refresh tokens without it, so an access token
// can never be replayed against the refresh endpoint even if the secrets
// were ever unified.
const RefreshTokenType = "refresh"

// AccessClaims are the claims embedded in access tokens. Subject carries the
// user id; the rest is the identity summary the resource side needs without
// a store round trip.
type AccessClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// RefreshClaims are the deliberately minimal claims embedded in refresh
// tokens: the subject (user id) and the token_type marker. Everything else
// about the session lives server-side in the refresh token registry.
type RefreshClaims struct {
	jwt.RegisteredClaims

	TokenType string `json:"token_type"`
}
