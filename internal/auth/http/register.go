package http

import (
	"net/http"
	"strings"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/service"
	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
	"github.com/ateekshsoni/gatekeeper-api/pkg/httpx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/slogx"
)

// RegisterHandler serves POST /v1/auth/register. A successful registration
// signs the account straight in: the response carries an access token and
// the refresh cookie.
type RegisterHandler struct {
	SessionService *service.SessionService
	Cookies        refreshCookies
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates an account and immediately issues a token pair.
//	@Description	The refresh token is delivered in an HttpOnly cookie, never in the body.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"email, password, display_name"
//	@Success		201		{object}	authsdk.AuthResponse	"user, access_token, token_type, expires_in"
//	@Failure		400		{object}	authsdk.ErrorResponse	"validation failed"
//	@Failure		409		{object}	authsdk.ErrorResponse	"email already registered"
//	@Failure		500		{object}	authsdk.ErrorResponse	"internal server error"
//	@Header			201		{string}	Set-Cookie				"refresh_token cookie"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrValidation.WriteError(w)
		return
	}

	if verr := validateEmail(req.Email); verr != nil {
		verr.WriteError(w)
		return
	}
	if verr := validatePassword(req.Password); verr != nil {
		verr.WriteError(w)
		return
	}
	if verr := validateDisplayName(req.DisplayName); verr != nil {
		verr.WriteError(w)
		return
	}

	sess, err := h.SessionService.Register(ctx, req.Email, req.Password, strings.TrimSpace(req.DisplayName))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	h.Cookies.set(w, sess.Tokens.RefreshToken)
	httpx.WriteJSON(w, http.StatusCreated, toAuthResponse(sess))
}
