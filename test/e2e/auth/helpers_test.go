package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for gatekeeper end-to-end tests.
 * This includes container setup, account helpers, and assertions.
 */

const (
	testImageName = "gatekeeper-test:latest"

	testPassword = "Sw0rdfish-pass!"
)

var emailCounter atomic.Int64

// uniqueEmail returns an address no other test in the run has used, so tests
// sharing a container never collide on registration.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, emailCounter.Add(1))
}

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Gatekeeper Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	// Run all tests
	exitCode := m.Run()

	// Clean up the Docker image after all tests complete
	fmt.Fprintf(os.Stdout, "Cleaning up Gatekeeper Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/gatekeeper/Dockerfile",
		"../../../")
	cmd.Dir = "." // Ensure we're in the test directory
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// containerEnv is the baseline environment for a test container. ENV stays
// "dev" so the refresh cookie is not marked Secure; the test client talks
// plain HTTP and a Secure cookie would never be replayed by the jar.
func containerEnv() map[string]string {
	return map[string]string{
		"AUTH_ISSUER":         "gatekeeper-e2e",
		"AUTH_ACCESS_SECRET":  "e2e-access-secret-0123456789",
		"AUTH_REFRESH_SECRET": "e2e-refresh-secret-9876543210",
		"AUTH_DATABASE_FILE":  "/gatekeeper.db",
		// Low cost keeps the many register/login calls cheap
		"AUTH_BCRYPT_COST": "4",
		"ENV":              "dev",
		"LOG_LEVEL":        "info",
		"LOG_FORMAT":       "json",
	}
}

// setupAuthContainer starts the service in a container and returns the base URL.
// Rate limits are raised far above the defaults: tests make many rapid
// requests which would otherwise hit the strict production limits.
func setupAuthContainer(t *testing.T) (string, func()) {
	t.Helper()

	env := containerEnv()
	env["RATELIMIT_STRICT_REQUESTS"] = "1000"
	env["RATELIMIT_STRICT_WINDOW_SEC"] = "60"
	env["RATELIMIT_STRICT_BURST"] = "1000"
	env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
	env["RATELIMIT_MODERATE_BURST"] = "1000"

	return startContainer(t, env)
}

// setupAuthContainerWithDefaultRateLimits starts the service with DEFAULT
// rate limits. This is specifically for testing that rate limiting works.
// Most tests should use setupAuthContainer() which has relaxed limits.
func setupAuthContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, containerEnv())
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	// Get the mapped port
	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerUser creates a fresh account and returns its session and email.
func registerUser(t *testing.T, client *authsdk.SDKClient, prefix string) (*authsdk.Session, string) {
	t.Helper()

	email := uniqueEmail(prefix)
	session, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Email:       email,
		Password:    testPassword,
		DisplayName: "E2E " + prefix,
	})
	require.NoError(t, err, "Register should succeed")
	require.NotNil(t, session)

	return session, email
}

// refreshCookieValue digs the current refresh token out of the client's
// cookie jar. Empty string when no cookie is stored.
func refreshCookieValue(t *testing.T, client *authsdk.SDKClient, baseURL string) string {
	t.Helper()

	u, err := url.Parse(baseURL + "/v1/auth")
	require.NoError(t, err)

	for _, c := range client.HTTPClient.Jar.Cookies(u) {
		if c.Name == "refresh_token" {
			return c.Value
		}
	}
	return ""
}

// postRefreshWithCookie calls POST /v1/auth/refresh presenting an explicit
// refresh token, bypassing the SDK's cookie jar. Returns the status code.
func postRefreshWithCookie(t *testing.T, baseURL, token string) int {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, baseURL+"/v1/auth/refresh", nil)
	require.NoError(t, err)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: token})
	}

	// No jar: the rotated cookie in the response must not leak into later calls
	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode
}

// assertAuthResponse verifies a session carries a usable token pair.
func assertAuthResponse(t *testing.T, session *authsdk.Session) {
	t.Helper()
	require.NotNil(t, session)
	require.NotEmpty(t, session.AccessToken(), "Access token should not be empty")
	require.NotEmpty(t, session.User().ID, "User ID should not be empty")
}

// assertAPIError verifies an error is an APIError with the given code.
func assertAPIError(t *testing.T, err error, code string, context string) {
	t.Helper()
	require.Error(t, err, context)

	apiErr, ok := err.(*authsdk.APIError)
	require.True(t, ok, "%s - expected *authsdk.APIError, got: %v", context, err)
	require.Equal(t, code, apiErr.Code, "%s - unexpected error code", context)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
