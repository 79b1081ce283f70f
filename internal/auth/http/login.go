package http

import (
	"net/http"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/service"
	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
	"github.com/ateekshsoni/gatekeeper-api/pkg/httpx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	SessionService *service.SessionService
	Cookies        refreshCookies
}

// ServeHTTP godoc
//
//	@Summary		Authenticate with email and password
//	@Description	Verifies credentials and issues a fresh token pair. The same
//	@Description	401 response covers unknown emails and wrong passwords.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	authsdk.AuthResponse	"user, access_token, token_type, expires_in"
//	@Failure		400		{object}	authsdk.ErrorResponse	"validation failed"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid credentials"
//	@Failure		403		{object}	authsdk.ErrorResponse	"account disabled"
//	@Failure		423		{object}	authsdk.ErrorResponse	"account locked"
//	@Failure		500		{object}	authsdk.ErrorResponse	"internal server error"
//	@Header			200		{string}	Set-Cookie				"refresh_token cookie"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrValidation.WriteError(w)
		return
	}

	if req.Email == "" || req.Password == "" {
		invalidField("email and password are required").WriteError(w)
		return
	}

	sess, err := h.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	h.Cookies.set(w, sess.Tokens.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, toAuthResponse(sess))
}
