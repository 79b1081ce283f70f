package domain

import "time"

// TokenPair is what a successful register/login/refresh returns: the
// short-lived access token (JWT) and the rotating refresh token. The refresh
// token is handed to the transport boundary for cookie placement and never
// appears in a JSON body.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration // access token lifetime
}

// RefreshToken models one live refresh token row in the per-user registry.
// TokenHash is a deterministic SHA-256 fingerprint of the signed token; the
// bearer value itself is never persisted. Insertion order (CreatedAt, then
// ID) drives oldest-first eviction when the per-user bound is exceeded.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}
