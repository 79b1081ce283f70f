package auth_test

import (
	"testing"

	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit verifies the production-default strict limit actually
// fires on the login endpoint. Runs against a container WITHOUT the relaxed
// test rate limits.
func TestLoginRateLimit(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	email := uniqueEmail("ratelimit")

	// Default strict profile allows 5 per minute from one IP. Errors here are
	// invalid_credentials until the limiter kicks in.
	sawRateLimit := false
	for range 10 {
		_, err := client.Login(t.Context(), email, "wrong-password-1")
		require.Error(t, err)

		if apiErr, ok := err.(*authsdk.APIError); ok && apiErr.Code == authsdk.ErrorCodeRateLimited {
			sawRateLimit = true
			break
		}
	}

	require.True(t, sawRateLimit, "Strict limit should reject rapid login attempts")
}
