package http

import (
	"net/http"
	"strings"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/service"
	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
	"github.com/ateekshsoni/gatekeeper-api/pkg/httpx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/slogx"
)

// AccountHandler serves the authenticated /v1/auth/me and /v1/auth/password
// endpoints.
type AccountHandler struct {
	AccountService *service.AccountService
	Cookies        refreshCookies
}

// HandleGet godoc
//
//	@Summary		Get the authenticated account
//	@Description	Returns the caller's account details and profile.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"account details"
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"internal server error"
//	@Router			/v1/auth/me [get].
func (h *AccountHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.AccountService.GetUser(ctx, userID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleUpdate godoc
//
//	@Summary		Update the authenticated account
//	@Description	Updates the display name and/or profile document. Omitted
//	@Description	fields keep their current value.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.UpdateProfileRequest	true	"display_name, profile"
//	@Success		200		{object}	authsdk.UserResponse			"updated account details"
//	@Failure		400		{object}	authsdk.ErrorResponse			"validation failed"
//	@Failure		401		{object}	authsdk.ErrorResponse			"invalid or missing access token"
//	@Failure		500		{object}	authsdk.ErrorResponse			"internal server error"
//	@Router			/v1/auth/me [put].
func (h *AccountHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req authsdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrValidation.WriteError(w)
		return
	}

	current, err := h.AccountService.GetUser(ctx, userID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	displayName := current.DisplayName
	if req.DisplayName != nil {
		if verr := validateDisplayName(*req.DisplayName); verr != nil {
			verr.WriteError(w)
			return
		}
		displayName = strings.TrimSpace(*req.DisplayName)
	}

	profile := current.Profile
	if req.Profile != nil {
		profile = fromProfileRequest(*req.Profile)
	}

	user, err := h.AccountService.UpdateProfile(ctx, userID, displayName, profile)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleChangePassword godoc
//
//	@Summary		Change the account password
//	@Description	Verifies the current password before setting the new one. On
//	@Description	success every refresh session is revoked; re-authenticate to
//	@Description	obtain new tokens.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	authsdk.ChangePasswordRequest	true	"current_password, new_password"
//	@Success		204		"Password changed, all sessions revoked"
//	@Failure		400		{object}	authsdk.ErrorResponse	"validation failed"
//	@Failure		401		{object}	authsdk.ErrorResponse	"current password incorrect or token invalid"
//	@Failure		500		{object}	authsdk.ErrorResponse	"internal server error"
//	@Router			/v1/auth/password [post].
func (h *AccountHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req authsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrValidation.WriteError(w)
		return
	}

	if req.CurrentPassword == "" {
		invalidField("current_password is required").WriteError(w)
		return
	}
	if verr := validatePassword(req.NewPassword); verr != nil {
		verr.WriteError(w)
		return
	}

	if err := h.AccountService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, log, err)
		return
	}

	// The caller's refresh session died with the rest.
	h.Cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}
