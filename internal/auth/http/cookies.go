package http

import (
	"net/http"
	"time"
)

// refreshCookieName is the cookie carrying the refresh token. The token
// never appears in a JSON response body.
const refreshCookieName = "refresh_token"

// refreshCookiePath scopes the cookie to the auth endpoints so it is not
// replayed on unrelated requests.
const refreshCookiePath = "/v1/auth"

// refreshCookies writes and clears the HttpOnly refresh-token cookie.
type refreshCookies struct {
	// Secure marks the cookie HTTPS-only. Disabled only in dev.
	Secure bool

	// TTL is the cookie lifetime, matching the refresh token TTL.
	TTL time.Duration
}

func (c refreshCookies) set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c refreshCookies) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// refreshTokenFromRequest extracts the refresh token cookie value, or ""
// when absent.
func refreshTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
