package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// tokenExpiryBuffer refreshes slightly before the access token's real expiry
// so in-flight requests do not race the deadline.
const tokenExpiryBuffer = 30 * time.Second

// Session provides authenticated operations against the auth service. The
// access token is refreshed transparently via the refresh cookie held in the
// client's cookie jar.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	user        UserResponse
}

func newSession(c *SDKClient, auth AuthResponse) *Session {
	s := &Session{client: c}
	s.setTokens(auth)
	return s
}

// User returns the account summary captured at the last token issue.
func (s *Session) User() UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AccessToken returns the current access token. Prefer the Session methods,
// which refresh automatically; this is for callers wiring the token into
// other transports.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Me fetches the caller's account details.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the caller's display name and/or profile document.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPut, "/v1/auth/me", req)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the account password. All refresh sessions are
// revoked server-side, including this one; re-authenticate afterwards.
func (s *Session) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/auth/password", ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// SetUserStatus activates or deactivates another account. Requires the
// admin role.
func (s *Session) SetUserStatus(ctx context.Context, userID string, active bool) (*UserResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPatch, "/v1/admin/users/"+userID+"/status", SetUserStatusRequest{
		Active: active,
	})
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh exchanges the refresh cookie for a new token pair and updates the
// session in place.
func (s *Session) Refresh(ctx context.Context) error {
	resp, err := s.client.postJSON(ctx, "/v1/auth/refresh", nil)
	if err != nil {
		return err
	}

	var authResp AuthResponse
	if err := decodeJSON(resp, &authResp, http.StatusOK); err != nil {
		return err
	}

	s.setTokens(authResp)
	return nil
}

// Logout revokes the current refresh session. Idempotent; safe to call when
// the session is already revoked.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.postJSON(ctx, "/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// LogoutAll revokes every refresh session for the account.
func (s *Session) LogoutAll(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/logout-all", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *Session) setTokens(auth AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = auth.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(auth.ExpiresIn) * time.Second).Add(-tokenExpiryBuffer)
	s.user = auth.User
}

// getValidToken returns a non-expired access token, refreshing via the
// refresh cookie when needed.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	token, expiresAt := s.accessToken, s.expiresAt
	s.mu.RUnlock()

	if time.Now().Before(expiresAt) {
		return token, nil
	}

	if err := s.Refresh(ctx); err != nil {
		return "", fmt.Errorf("failed to refresh access token: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, nil
}

// doAuthJSON performs an authenticated request with a JSON body.
func (s *Session) doAuthJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return s.doAuthRequest(ctx, method, path, bytes.NewReader(buf))
}

// doAuthRequest performs an authenticated HTTP request using the session's
// access token, refreshing it first if expired.
func (s *Session) doAuthRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}
