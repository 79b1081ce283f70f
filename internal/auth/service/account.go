package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/domain"
	"github.com/ateekshsoni/gatekeeper-api/internal/auth/store"
	"github.com/ateekshsoni/gatekeeper-api/pkg/cryptox"
	"github.com/ateekshsoni/gatekeeper-api/pkg/slogx"
)

// AccountService covers the account operations outside the login/refresh
// lifecycle: profile reads and writes, password changes, and the admin
// enable/disable switch.
type AccountService struct {
	Store  store.Store
	Hasher cryptox.Hasher
}

// GetUser fetches a user by id.
func (s *AccountService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// UpdateProfile mutates the display name and the peripheral profile value
// and returns the updated record.
func (s *AccountService) UpdateProfile(
	ctx context.Context,
	userID, displayName string,
	profile domain.Profile,
) (domain.User, error) {
	if err := s.Store.Users().UpdateProfile(ctx, userID, displayName, profile); err != nil {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ChangePassword verifies the current password, re-hashes the new one, and
// revokes every outstanding refresh token: a credential change ends all
// other sessions.
func (s *AccountService) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.Hasher.Verify(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		return tx.RefreshTokens().DeleteAllForUser(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed, sessions revoked", "user_id", userID)
	return nil
}

// SetUserActive flips the account's active flag. Disabling does not revoke
// live access tokens (they age out within the access TTL) but blocks login
// and refresh immediately.
func (s *AccountService) SetUserActive(ctx context.Context, userID string, active bool) error {
	if err := s.Store.Users().SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("set user active: %w", err)
	}

	slogx.FromContext(ctx).Info("account status changed", "user_id", userID, "active", active)
	return nil
}
