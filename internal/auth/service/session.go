package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/domain"
	"github.com/ateekshsoni/gatekeeper-api/internal/auth/store"
	"github.com/ateekshsoni/gatekeeper-api/pkg/cryptox"
	"github.com/ateekshsoni/gatekeeper-api/pkg/idx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/jwtx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/slogx"
)

// MaxRefreshTokensPerUser bounds the per-user refresh token registry. Oldest
// entries are evicted first when a new token would exceed the bound.
const MaxRefreshTokensPerUser = 5

// SessionService orchestrates the login/refresh/logout lifecycle over the
// credential store, the password hasher, the lockout policy and the token
// manager. It is invoked concurrently per request; every mutation of a user's
// security state runs as one store transaction.
type SessionService struct {
	Store  store.Store
	Tokens *jwtx.Manager
	Hasher cryptox.Hasher

	// Now is the clock for lockout and registry expiry decisions. Defaults
	// to time.Now; tests inject a fixed clock.
	Now func() time.Time
}

// Session is the success payload: the user record (for the summary the
// boundary returns) plus the freshly minted token pair.
type Session struct {
	User   domain.User
	Tokens domain.TokenPair
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates a user account and signs it straight in. Fails with
// ErrEmailTaken when the normalized email already exists. LastLogin stays
// unset until the first explicit Login.
func (s *SessionService) Register(
	ctx context.Context,
	email, password, fullName string,
) (*Session, error) {
	now := s.now()

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		DisplayName:  fullName,
		Role:         domain.RoleUser,
		IsActive:     true,
		Profile:      domain.DefaultProfile(),
	}

	pair, row, err := s.issuePair(user, now)
	if err != nil {
		return nil, err
	}

	// User row and first refresh token land together: a half-registered
	// account with no registered session never exists.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.RefreshTokens().Create(ctx, row)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return &Session{User: user, Tokens: pair}, nil
}

// Login verifies credentials and issues a fresh token pair. Check order is
// deliberate: lock state before password comparison (stable error regardless
// of password correctness, and no hashing work for locked accounts), then
// the active flag, then the hash comparison.
func (s *SessionService) Login(ctx context.Context, email, password string) (*Session, error) {
	now := s.now()
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same sentinel as a wrong password: no account enumeration.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup user: %w", err)
	}

	if (LockState{Attempts: user.LoginAttempts, LockUntil: user.LockUntil}).Locked(now) {
		l.Info("login rejected: account locked", "user_id", user.ID)
		return nil, ErrAccountLocked
	}

	if !user.IsActive {
		l.Info("login rejected: account disabled", "user_id", user.ID)
		return nil, ErrAccountDisabled
	}

	if !s.Hasher.Verify(password, user.PasswordHash) {
		if err := s.recordLoginFailure(ctx, user.ID, now); err != nil {
			l.Error("failed to record login failure", "err", err, "user_id", user.ID)
		}
		return nil, ErrInvalidCredentials
	}

	user.LoginAttempts = 0
	user.LockUntil = nil
	user.LastLogin = &now

	pair, row, err := s.issuePair(user, now)
	if err != nil {
		return nil, err
	}

	// Success path in one transaction: counters reset, stale registry rows
	// pruned, new token registered, bound enforced.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().RecordLogin(ctx, user.ID, now); err != nil {
			return err
		}
		if err := tx.RefreshTokens().DeleteExpiredForUser(ctx, user.ID, now); err != nil {
			return err
		}
		if err := tx.RefreshTokens().Create(ctx, row); err != nil {
			return err
		}
		return tx.RefreshTokens().TrimToNewest(ctx, user.ID, MaxRefreshTokensPerUser)
	})
	if err != nil {
		return nil, fmt.Errorf("login: persist session: %w", err)
	}

	l.Info("user logged in", "user_id", user.ID)
	return &Session{User: user, Tokens: pair}, nil
}

// recordLoginFailure re-reads the counters inside the transaction and applies
// the pure policy to the fresh state, so two concurrent failed attempts are
// both counted instead of one overwriting the other.
func (s *SessionService) recordLoginFailure(ctx context.Context, userID string, now time.Time) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		next := LockState{Attempts: user.LoginAttempts, LockUntil: user.LockUntil}.Fail(now)
		return tx.Users().UpdateLockState(ctx, userID, next.Attempts, next.LockUntil)
	})
}

// Refresh exchanges a presented refresh token for a new pair. Two proofs are
// required: the signature says this service issued the token, and registry
// membership says it has not since been revoked or superseded. Rotation is
// atomic, so the presented token dies in the same transaction that births
// its replacement.
func (s *SessionService) Refresh(ctx context.Context, presented string) (*Session, error) {
	if presented == "" {
		return nil, ErrUnauthenticated
	}

	now := s.now()
	l := slogx.FromContext(ctx)

	claims, err := s.Tokens.VerifyRefresh(presented)
	if err != nil {
		// Expired and invalid stay distinct in logs only.
		l.Info("refresh rejected", "reason", err.Error())
		return nil, ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh: lookup user: %w", err)
	}

	if !user.IsActive {
		l.Info("refresh rejected: account disabled", "user_id", user.ID)
		return nil, ErrAccountDisabled
	}

	pair, row, err := s.issuePair(user, now)
	if err != nil {
		return nil, err
	}

	presentedHash := cryptox.FingerprintToken(presented)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.RefreshTokens().Exists(ctx, user.ID, presentedHash)
		if err != nil {
			return err
		}
		if !ok {
			// Revocation enforcement point: valid signature, but the token
			// was logged out, superseded, or never ours to honor.
			return ErrInvalidToken
		}

		if err := tx.RefreshTokens().Delete(ctx, user.ID, presentedHash); err != nil {
			return err
		}
		if err := tx.RefreshTokens().Create(ctx, row); err != nil {
			return err
		}
		return tx.RefreshTokens().TrimToNewest(ctx, user.ID, MaxRefreshTokensPerUser)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			l.Info("refresh rejected: token not in registry", "user_id", user.ID)
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh: rotate token: %w", err)
	}

	return &Session{User: user, Tokens: pair}, nil
}

// Logout removes the presented refresh token from its owner's registry.
// Best-effort and idempotent: an absent, expired or malformed token is not
// an error, the caller ends up logged out either way.
func (s *SessionService) Logout(ctx context.Context, presented string) error {
	if presented == "" {
		return nil
	}

	claims, err := s.Tokens.VerifyRefresh(presented)
	if err != nil {
		// Nothing verifiable to revoke; the registry row (if any) falls to
		// pruning once it expires.
		return nil
	}

	hash := cryptox.FingerprintToken(presented)
	if err := s.Store.RefreshTokens().Delete(ctx, claims.Subject, hash); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	slogx.FromContext(ctx).Info("session revoked", "user_id", claims.Subject)
	return nil
}

// LogoutAll clears the user's whole registry, invalidating every outstanding
// refresh token across all devices.
func (s *SessionService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.Store.RefreshTokens().DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	slogx.FromContext(ctx).Info("all sessions revoked", "user_id", userID)
	return nil
}

// issuePair mints an access+refresh token pair and the registry row for the
// refresh token. Pure token work; persistence is the caller's transaction.
func (s *SessionService) issuePair(
	user domain.User,
	now time.Time,
) (domain.TokenPair, domain.RefreshToken, error) {
	access, err := s.Tokens.IssueAccess(user.ID, user.Email, user.DisplayName, string(user.Role))
	if err != nil {
		return domain.TokenPair{}, domain.RefreshToken{}, err
	}

	refresh, err := s.Tokens.IssueRefresh(user.ID)
	if err != nil {
		return domain.TokenPair{}, domain.RefreshToken{}, err
	}

	pair := domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.Tokens.AccessTokenTTL(),
	}

	row := domain.RefreshToken{
		ID:        idx.NewAt(now).String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(refresh),
		CreatedAt: now,
		ExpiresAt: now.Add(s.Tokens.RefreshTokenTTL()),
	}

	return pair, row, nil
}
