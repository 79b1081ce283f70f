package service

import "time"

const (
	// LockoutThreshold is the failed-attempt count that trips the lock.
	LockoutThreshold = 5

	// LockoutDuration is how long a tripped lock holds.
	LockoutDuration = 2 * time.Hour
)

// LockState is the lockout-relevant slice of a user record. The policy below
// is pure: it never touches the store, so it is testable with nothing but a
// clock. Persistence of the resulting state happens inside a store
// transaction so concurrent attempts against one account are all counted.
type LockState struct {
	Attempts  int
	LockUntil *time.Time
}

// Locked reports whether the account is currently locked.
func (s LockState) Locked(now time.Time) bool {
	return s.LockUntil != nil && s.LockUntil.After(now)
}

// Fail returns the state after one failed login attempt at now. An expired
// lock means the previous penalty window is over: the counter restarts at 1
// and the stale lock is cleared. Otherwise the counter increments, and
// reaching LockoutThreshold sets the lock.
func (s LockState) Fail(now time.Time) LockState {
	if s.LockUntil != nil && !s.LockUntil.After(now) {
		return LockState{Attempts: 1}
	}

	next := LockState{Attempts: s.Attempts + 1}
	if next.Attempts >= LockoutThreshold {
		until := now.Add(LockoutDuration)
		next.LockUntil = &until
	}
	return next
}

// Reset returns the post-success state: counter and lock cleared
// unconditionally.
func (s LockState) Reset() LockState {
	return LockState{}
}
