package sqlite

import (
	"context"
	"time"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/domain"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) Create(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, t.CreatedAt.UTC(), t.ExpiresAt.UTC())
	return err
}

func (r *refreshTokensRepo) Exists(ctx context.Context, userID, tokenHash string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM refresh_tokens
		WHERE user_id = ? AND token_hash = ?`,
		userID, tokenHash).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *refreshTokensRepo) Delete(ctx context.Context, userID, tokenHash string) error {
	// Absence is not an error: logout is idempotent.
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM refresh_tokens
		WHERE user_id = ? AND token_hash = ?`,
		userID, tokenHash)
	return err
}

func (r *refreshTokensRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = ?`, userID)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredForUser(
	ctx context.Context,
	userID string,
	now time.Time,
) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM refresh_tokens
		WHERE user_id = ? AND expires_at <= ?`,
		userID, now.UTC())
	return err
}

func (r *refreshTokensRepo) TrimToNewest(ctx context.Context, userID string, keep int) error {
	// ULIDs sort by creation time, so (created_at, id) gives a stable
	// oldest-first eviction order even within one millisecond.
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM refresh_tokens
		WHERE user_id = ? AND id NOT IN (
			SELECT id FROM refresh_tokens
			WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`,
		userID, userID, keep)
	return err
}

func (r *refreshTokensRepo) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM refresh_tokens WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

func (r *refreshTokensRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`, now.UTC())
	return err
}
