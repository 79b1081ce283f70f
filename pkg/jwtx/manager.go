package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ateekshsoni/gatekeeper-api/pkg/idx"
)

var (
	// ErrTokenExpired reports a structurally valid, correctly signed token
	// past its expiry. Kept distinct from ErrTokenInvalid internally; the
	// HTTP boundary collapses both into one outward message.
	ErrTokenExpired = errors.New("jwtx: token expired")

	// ErrTokenInvalid reports a malformed token, a bad signature, or a
	// token of the wrong type.
	ErrTokenInvalid = errors.New("jwtx: token invalid")
)

// Manager signs and verifies access and refresh tokens with two independent
// HMAC-SHA256 secrets, so compromise of one secret does not let an attacker
// forge the other class of token. Issuance and verification are stateless;
// a Manager is safe for concurrent use once constructed.
type Manager struct {
	AccessSecret  []byte
	RefreshSecret []byte

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	Issuer string

	// Now is the clock used for iat/exp and expiry validation. Defaults to
	// time.Now; tests inject a fixed clock.
	Now func() time.Time
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// AccessTokenTTL is the effective access token lifetime, falling back to the
// package default when the field is unset. Callers reporting expires_in must
// use this rather than the raw field.
func (m *Manager) AccessTokenTTL() time.Duration {
	if m.AccessTTL > 0 {
		return m.AccessTTL
	}
	return DefaultAccessTokenTTL
}

// RefreshTokenTTL is the effective refresh token lifetime, falling back to
// the package default when the field is unset.
func (m *Manager) RefreshTokenTTL() time.Duration {
	if m.RefreshTTL > 0 {
		return m.RefreshTTL
	}
	return DefaultRefreshTokenTTL
}

// IssueAccess mints a signed access token carrying the user's identity
// summary.
func (m *Manager) IssueAccess(userID, email, name, role string) (string, error) {
	now := m.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        idx.New().String(),
			Subject:   userID,
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.AccessTokenTTL())),
		},
		Email: email,
		Name:  name,
		Role:  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.AccessSecret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefresh mints a signed refresh token for the user. Signature validity
// proves this service issued it; whether it is still honored is the refresh
// token registry's call. The jti makes every mint distinct: iat/exp have
// whole-second precision, so without it two tokens for the same user in the
// same second would be byte-identical.
func (m *Manager) IssueRefresh(userID string) (string, error) {
	now := m.now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        idx.New().String(),
			Subject:   userID,
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.RefreshTokenTTL())),
		},
		TokenType: RefreshTokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.RefreshSecret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign refresh token: %w", err)
	}
	return signed, nil
}

// VerifyAccess validates signature, issuer and expiry of an access token and
// returns its claims.
func (m *Manager) VerifyAccess(raw string) (AccessClaims, error) {
	var claims AccessClaims
	if err := m.parse(raw, &claims, m.AccessSecret); err != nil {
		return AccessClaims{}, err
	}
	return claims, nil
}

// VerifyRefresh validates signature, issuer, expiry and the token_type
// marker of a refresh token. Expiry maps to ErrTokenExpired; every other
// failure maps to ErrTokenInvalid.
func (m *Manager) VerifyRefresh(raw string) (RefreshClaims, error) {
	var claims RefreshClaims
	if err := m.parse(raw, &claims, m.RefreshSecret); err != nil {
		return RefreshClaims{}, err
	}
	if claims.TokenType != RefreshTokenType {
		return RefreshClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (m *Manager) parse(raw string, claims jwt.Claims, secret []byte) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.Issuer))
	}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}
