/*
Package authsdk provides a client SDK for the Gatekeeper authentication service.

# Overview

The package is organized around two main types:

  - SDKClient: Provides unauthenticated operations (register, login, health
    checks) and creates authenticated sessions
  - Session: Provides authenticated operations with automatic token refresh

Create an SDKClient to interact with public endpoints and authenticate:

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Register a new account
	session, err := client.Register(ctx, authsdk.RegisterRequest{
		Email:       "alice@example.com",
		Password:    "s3cret-password",
		DisplayName: "Alice",
	})

	// Or log in to an existing account
	session, err := client.Login(ctx, "alice@example.com", "s3cret-password")

Use a Session for authenticated operations:

	me, err := session.Me(ctx)
	err = session.ChangePassword(ctx, "s3cret-password", "new-password")
	err = session.Logout(ctx)

# Refresh Tokens

The service delivers refresh tokens in an HttpOnly cookie rather than the
response body. The SDKClient's HTTP client carries a cookie jar, so the
refresh cookie is stored and replayed automatically. Session methods refresh
the access token transparently when it nears expiry (30-second buffer); you
never need to call Refresh yourself.

# Error Handling

Error responses are returned as *APIError with the service's error code and
HTTP status:

	_, err := client.Login(ctx, email, password)
	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == authsdk.ErrorCodeAccountLocked {
		// tell the user to come back later
	}

# Thread Safety

Sessions are safe for concurrent use. Token state is guarded by a mutex, so
multiple goroutines can share a single Session.
*/
package authsdk
