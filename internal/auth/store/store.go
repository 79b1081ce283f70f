package store

import (
	"context"
	"errors"
	"time"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh
	// rotation, lockout counting). The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id, password hash included.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by normalized email. Used during login,
	// so the projection includes the password hash.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the normalized email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateLockState writes the failed-login counters in one statement:
	// login_attempts and lock_until, bumping updated_at.
	UpdateLockState(ctx context.Context, userID string, attempts int, lockUntil *time.Time) error

	// RecordLogin applies the success path: attempts reset to zero, lock
	// cleared, last_login set. One statement.
	RecordLogin(ctx context.Context, userID string, at time.Time) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateProfile mutates display_name and the peripheral profile value.
	UpdateProfile(ctx context.Context, userID string, displayName string, profile domain.Profile) error

	// SetActive flips the is_active flag (admin disable/enable).
	SetActive(ctx context.Context, userID string, active bool) error
}

type RefreshTokens interface {
	// Create stores a new refresh token row.
	Create(ctx context.Context, t domain.RefreshToken) error

	// Exists reports registry membership for a user/fingerprint pair. This
	// is the revocation enforcement check during refresh.
	Exists(ctx context.Context, userID, tokenHash string) (bool, error)

	// Delete removes one row by user/fingerprint. Deleting an absent row is
	// not an error.
	Delete(ctx context.Context, userID, tokenHash string) error

	// DeleteAllForUser clears the user's registry (logout-all).
	DeleteAllForUser(ctx context.Context, userID string) error

	// DeleteExpiredForUser drops rows with expires_at <= now for one user.
	// Called opportunistically at login.
	DeleteExpiredForUser(ctx context.Context, userID string, now time.Time) error

	// TrimToNewest deletes the oldest rows until at most keep remain for
	// the user. Ordering is created_at then id (ULIDs sort by time).
	TrimToNewest(ctx context.Context, userID string, keep int) error

	// CountForUser returns the user's current registry size.
	CountForUser(ctx context.Context, userID string) (int, error)

	// DeleteExpired is global housekeeping across all users.
	DeleteExpired(ctx context.Context, now time.Time) error
}
