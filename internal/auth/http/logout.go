package http

import (
	"net/http"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/service"
	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
	"github.com/ateekshsoni/gatekeeper-api/pkg/httpx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/slogx"
)

// LogoutHandler serves POST /v1/auth/logout. Idempotent: a missing or
// garbage cookie still ends with 204 and a cleared cookie.
type LogoutHandler struct {
	SessionService *service.SessionService
	Cookies        refreshCookies
}

// ServeHTTP godoc
//
//	@Summary		Log out the current session
//	@Description	Revokes the refresh token in the cookie and clears it.
//	@Description	Idempotent; an absent or invalid token is not an error.
//	@Tags			Auth
//	@Success		204	"Session revoked"
//	@Failure		500	{object}	authsdk.ErrorResponse	"internal server error"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.SessionService.Logout(ctx, refreshTokenFromRequest(r)); err != nil {
		writeServiceError(w, log, err)
		return
	}

	h.Cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// LogoutAllHandler serves POST /v1/auth/logout-all. Requires a valid access
// token; revokes every refresh session of the caller.
type LogoutAllHandler struct {
	SessionService *service.SessionService
	Cookies        refreshCookies
}

// ServeHTTP godoc
//
//	@Summary		Log out everywhere
//	@Description	Revokes every refresh session of the authenticated account,
//	@Description	across all devices, and clears the caller's refresh cookie.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204	"All sessions revoked"
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"internal server error"
//	@Router			/v1/auth/logout-all [post].
func (h *LogoutAllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.SessionService.LogoutAll(ctx, userID); err != nil {
		writeServiceError(w, log, err)
		return
	}

	h.Cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}
