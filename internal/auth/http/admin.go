package http

import (
	"net/http"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/service"
	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
	"github.com/ateekshsoni/gatekeeper-api/pkg/httpx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/slogx"
)

// AdminHandler serves the admin-only account management endpoints.
type AdminHandler struct {
	AccountService *service.AccountService
	SessionService *service.SessionService
}

// HandleSetStatus godoc
//
//	@Summary		Activate or deactivate an account
//	@Description	Flips the account's active flag. Deactivating revokes every
//	@Description	refresh session immediately; outstanding access tokens age out
//	@Description	within their TTL. Requires the admin role.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"user id"
//	@Param			request	body		authsdk.SetUserStatusRequest	true	"active"
//	@Success		200		{object}	authsdk.UserResponse		"updated account details"
//	@Failure		400		{object}	authsdk.ErrorResponse		"validation failed"
//	@Failure		401		{object}	authsdk.ErrorResponse		"invalid or missing access token"
//	@Failure		403		{object}	authsdk.ErrorResponse		"insufficient role"
//	@Failure		404		{object}	authsdk.ErrorResponse		"unknown user"
//	@Failure		500		{object}	authsdk.ErrorResponse		"internal server error"
//	@Router			/v1/admin/users/{id}/status [patch].
func (h *AdminHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := r.PathValue("id")
	if userID == "" {
		invalidField("user id is required").WriteError(w)
		return
	}

	var req authsdk.SetUserStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrValidation.WriteError(w)
		return
	}

	if err := h.AccountService.SetUserActive(ctx, userID, req.Active); err != nil {
		writeServiceError(w, log, err)
		return
	}

	// A disabled account keeps no live sessions.
	if !req.Active {
		if err := h.SessionService.LogoutAll(ctx, userID); err != nil {
			writeServiceError(w, log, err)
			return
		}
	}

	user, err := h.AccountService.GetUser(ctx, userID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
