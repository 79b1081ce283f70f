package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/service"
	"github.com/ateekshsoni/gatekeeper-api/internal/auth/store"
	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
)

// writeServiceError maps a service-layer error onto the wire error taxonomy.
// Unexpected errors are logged and flattened to a generic 500 so internals
// never leak into a response body.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		authsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrAccountLocked):
		authsdk.ErrAccountLocked.WriteError(w)
	case errors.Is(err, service.ErrAccountDisabled):
		authsdk.ErrAccountDisabled.WriteError(w)
	case errors.Is(err, service.ErrUnauthenticated):
		authsdk.ErrMissingRefreshToken.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		authsdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		authsdk.ErrNotFound.WriteError(w)
	default:
		log.Error("request failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}
