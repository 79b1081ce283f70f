package domain

import (
	"strings"
	"time"
)

// Role is the authorization label carried into access tokens. There is no
// permission engine behind it; resource servers interpret the label.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known role labels.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User is the persisted user record: identity plus account-security state.
// Email is stored normalized (lowercase, trimmed) and is unique. The
// security fields (LoginAttempts, LockUntil, the refresh token rows keyed by
// ID) are shared mutable state; all writes to them go through store
// transactions, never in-memory read-modify-write.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt; only ever set via the hasher
	DisplayName  string
	Role         Role
	IsActive     bool

	LoginAttempts int
	LockUntil     *time.Time
	LastLogin     *time.Time

	Profile Profile

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail lowercases and trims an email so lookups and the uniqueness
// constraint are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Profile is the peripheral, schema-light part of the user record. It is not
// part of the security core and rides along as a JSON value with defaults.
type Profile struct {
	Preferences Preferences `json:"preferences"`
	Address     Address     `json:"address"`
}

type Preferences struct {
	Theme      string `json:"theme"`
	Newsletter bool   `json:"newsletter"`
}

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// DefaultProfile returns the profile assigned at registration.
func DefaultProfile() Profile {
	return Profile{Preferences: Preferences{Theme: "light"}}
}
