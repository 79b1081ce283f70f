package http

import (
	"errors"
	"net/http"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/service"
	"github.com/ateekshsoni/gatekeeper-api/pkg/httpx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/slogx"
)

// RefreshHandler serves POST /v1/auth/refresh. The presented token is read
// from the refresh cookie; rotation replaces it with a new one in the same
// response.
type RefreshHandler struct {
	SessionService *service.SessionService
	Cookies        refreshCookies
}

// ServeHTTP godoc
//
//	@Summary		Rotate the refresh token
//	@Description	Exchanges the refresh cookie for a new token pair. The presented
//	@Description	token is single-use: it is revoked in the same transaction that
//	@Description	registers its replacement. A rejected token clears the cookie.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.AuthResponse	"user, access_token, token_type, expires_in"
//	@Failure		401	{object}	authsdk.ErrorResponse	"missing, invalid, expired or revoked token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"account disabled"
//	@Failure		500	{object}	authsdk.ErrorResponse	"internal server error"
//	@Header			200	{string}	Set-Cookie				"rotated refresh_token cookie"
//	@Router			/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sess, err := h.SessionService.Refresh(ctx, refreshTokenFromRequest(r))
	if err != nil {
		// A dead token is useless to the client; drop the cookie with the
		// error so the browser stops replaying it.
		if errors.Is(err, service.ErrInvalidToken) {
			h.Cookies.clear(w)
		}
		writeServiceError(w, log, err)
		return
	}

	h.Cookies.set(w, sess.Tokens.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, toAuthResponse(sess))
}
