package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/domain"
	"github.com/ateekshsoni/gatekeeper-api/internal/auth/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, password_hash, display_name, role, is_active,
	login_attempts, lock_until, last_login, profile, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`,
		domain.NormalizeEmail(email))
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	profile, err := marshalProfile(u.Profile)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, role, is_active,
			login_attempts, lock_until, last_login, profile)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		domain.NormalizeEmail(u.Email),
		u.PasswordHash,
		u.DisplayName,
		string(u.Role),
		u.IsActive,
		u.LoginAttempts,
		mapOptionalTime(u.LockUntil),
		mapOptionalTime(u.LastLogin),
		profile,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) UpdateLockState(
	ctx context.Context,
	userID string,
	attempts int,
	lockUntil *time.Time,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET login_attempts = ?, lock_until = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		attempts, mapOptionalTime(lockUntil), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) RecordLogin(ctx context.Context, userID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET login_attempts = 0, lock_until = NULL, last_login = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		at.UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		newHash, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdateProfile(
	ctx context.Context,
	userID string,
	displayName string,
	profile domain.Profile,
) error {
	raw, err := marshalProfile(profile)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET display_name = ?, profile = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		displayName, raw, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		active, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		role      string
		lockUntil sql.NullTime
		lastLogin sql.NullTime
		profile   string
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &role, &u.IsActive,
		&u.LoginAttempts, &lockUntil, &lastLogin, &profile,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Role = domain.Role(role)
	u.LockUntil = mapNullTimePtr(lockUntil)
	u.LastLogin = mapNullTimePtr(lastLogin)
	u.Profile = unmarshalProfile(profile)
	return u, nil
}
