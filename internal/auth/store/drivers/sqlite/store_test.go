package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/domain"
	"github.com/ateekshsoni/gatekeeper-api/internal/auth/store"
	"github.com/ateekshsoni/gatekeeper-api/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *Store, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhash",
		DisplayName:  "Test User",
		Role:         domain.RoleUser,
		IsActive:     true,
		Profile:      domain.DefaultProfile(),
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestCreateUserDuplicateEmailIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "alice@example.com")

	dup := domain.User{
		ID:           idx.New().String(),
		Email:        "ALICE@Example.COM",
		PasswordHash: "x",
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	err := s.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserByEmailNormalizesLookup(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "Bob@Example.com")

	got, err := s.Users().GetUserByEmail(ctx, "  BOB@EXAMPLE.COM ")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "bob@example.com", got.Email)
	require.NotEmpty(t, got.PasswordHash)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLockStateRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "carol@example.com")

	until := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, s.Users().UpdateLockState(ctx, u.ID, 5, &until))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.LoginAttempts)
	require.NotNil(t, got.LockUntil)
	require.WithinDuration(t, until, *got.LockUntil, time.Second)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Users().RecordLogin(ctx, u.ID, at))

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, got.LoginAttempts)
	require.Nil(t, got.LockUntil)
	require.NotNil(t, got.LastLogin)
	require.WithinDuration(t, at, *got.LastLogin, time.Second)
}

func TestUpdateLockStateUnknownUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	err := s.Users().UpdateLockState(context.Background(), "missing", 1, nil)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProfileRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "dave@example.com")

	profile := domain.Profile{
		Preferences: domain.Preferences{Theme: "dark", Newsletter: true},
		Address:     domain.Address{City: "Sydney", Country: "AU"},
	}
	require.NoError(t, s.Users().UpdateProfile(ctx, u.ID, "Dave R", profile))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Dave R", got.DisplayName)
	require.Equal(t, profile, got.Profile)
}

func refreshRow(userID, hash string, createdAt time.Time) domain.RefreshToken {
	return domain.RefreshToken{
		ID:        idx.NewAt(createdAt).String(),
		UserID:    userID,
		TokenHash: hash,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(7 * 24 * time.Hour),
	}
}

func TestRefreshTokenMembershipAndIdempotentDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "erin@example.com")
	repo := s.RefreshTokens()

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, refreshRow(u.ID, "fp-1", now)))

	ok, err := repo.Exists(ctx, u.ID, "fp-1")
	require.NoError(t, err)
	require.True(t, ok)

	// Membership is scoped to the owning user.
	ok, err = repo.Exists(ctx, "other-user", "fp-1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Delete(ctx, u.ID, "fp-1"))
	require.NoError(t, repo.Delete(ctx, u.ID, "fp-1")) // second delete is a no-op

	ok, err = repo.Exists(ctx, u.ID, "fp-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTrimToNewestEvictsOldestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "frank@example.com")
	repo := s.RefreshTokens()

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		hash := "fp-" + string(rune('a'+i))
		require.NoError(t, repo.Create(ctx, refreshRow(u.ID, hash, base.Add(time.Duration(i)*time.Minute))))
	}

	require.NoError(t, repo.TrimToNewest(ctx, u.ID, 5))

	n, err := repo.CountForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	// The oldest row went, the newest stayed.
	ok, err := repo.Exists(ctx, u.ID, "fp-a")
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = repo.Exists(ctx, u.ID, "fp-f")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDeleteExpiredForUserKeepsLiveRows(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "gina@example.com")
	repo := s.RefreshTokens()

	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	expired := refreshRow(u.ID, "fp-old", now.Add(-8*24*time.Hour))
	live := refreshRow(u.ID, "fp-new", now.Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, expired))
	require.NoError(t, repo.Create(ctx, live))

	require.NoError(t, repo.DeleteExpiredForUser(ctx, u.ID, now))

	ok, err := repo.Exists(ctx, u.ID, "fp-old")
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = repo.Exists(ctx, u.ID, "fp-new")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "hank@example.com")

	sentinel := store.ErrNotFound
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.RefreshTokens().Create(ctx, refreshRow(u.ID, "fp-tx", time.Now().UTC())))
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	ok, err := s.RefreshTokens().Exists(ctx, u.ID, "fp-tx")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteAllForUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "iris@example.com")
	other := seedUser(t, s, "ivan@example.com")
	repo := s.RefreshTokens()

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, refreshRow(u.ID, "fp-1", now)))
	require.NoError(t, repo.Create(ctx, refreshRow(u.ID, "fp-2", now.Add(time.Second))))
	require.NoError(t, repo.Create(ctx, refreshRow(other.ID, "fp-3", now)))

	require.NoError(t, repo.DeleteAllForUser(ctx, u.ID))

	n, err := repo.CountForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = repo.CountForUser(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
