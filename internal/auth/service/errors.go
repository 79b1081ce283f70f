package service

import "errors"

// Sentinel errors form the outward failure taxonomy. The HTTP boundary maps
// them to statuses with errors.Is; messages stay stable and enumeration
// resistant (unknown email and wrong password share one sentinel, expired
// and revoked refresh tokens share another).
var (
	// ErrEmailTaken is the register conflict: the normalized email already
	// has an account.
	ErrEmailTaken = errors.New("email_already_registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// intentionally indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrAccountLocked means lock_until is in the future. Reported before
	// the password is even compared.
	ErrAccountLocked = errors.New("account_locked")

	// ErrAccountDisabled means the account exists but is_active is false.
	ErrAccountDisabled = errors.New("account_disabled")

	// ErrUnauthenticated means no refresh token was presented at all.
	ErrUnauthenticated = errors.New("missing_refresh_token")

	// ErrInvalidToken collapses expired, malformed, unsigned-by-us and
	// revoked refresh tokens into one outward failure.
	ErrInvalidToken = errors.New("invalid_or_expired_token")
)
