package authsdk

import "time"

// ============================================================================
// Request Types
// ============================================================================

// RegisterRequest contains the data needed to create a new account.
type RegisterRequest struct {
	// Email is the account email address, used as the login identifier
	Email string `json:"email"`

	// Password is the plaintext password (8-72 chars)
	Password string `json:"password"`

	// DisplayName is the user's display name (max 64 chars)
	DisplayName string `json:"display_name"`
}

// LoginRequest contains email/password credentials for an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest rotates the account password. All refresh sessions
// are revoked on success.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateProfileRequest updates the caller's display name and profile. Nil
// fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name,omitempty"`
	Profile     *Profile `json:"profile,omitempty"`
}

// SetUserStatusRequest activates or deactivates an account. Admin only.
type SetUserStatusRequest struct {
	Active bool `json:"active"`
}

// ============================================================================
// Response Types
// ============================================================================

// ErrorResponse represents a standard error response body.
// This is used internally for parsing HTTP error responses.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// AuthResponse is returned by the register, login, and refresh endpoints.
// The refresh token travels in an HttpOnly cookie, never in this body.
type AuthResponse struct {
	// User summarizes the authenticated account
	User UserResponse `json:"user"`

	// AccessToken is the JWT access token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`
}

// UserResponse represents an account as returned by the API.
type UserResponse struct {
	// ID is the unique identifier for the user
	ID string `json:"id"`

	// Email is the account email address
	Email string `json:"email"`

	// DisplayName is the user's display name
	DisplayName string `json:"display_name"`

	// Role is the account role ("user", "moderator", "admin")
	Role string `json:"role"`

	// Active indicates whether the account may authenticate
	Active bool `json:"active"`

	// Profile holds user preferences and optional address details
	Profile Profile `json:"profile"`

	// LastLogin is the most recent successful authentication, if any
	LastLogin *time.Time `json:"last_login,omitempty"`

	// CreatedAt is when the account was created
	CreatedAt time.Time `json:"created_at"`
}

// Profile mirrors the account profile document.
type Profile struct {
	Preferences Preferences `json:"preferences"`
	Address     Address     `json:"address"`
}

// Preferences holds per-user display and contact preferences.
type Preferences struct {
	Theme      string `json:"theme"`
	Newsletter bool   `json:"newsletter"`
}

// Address is an optional postal address.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
