package http

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
)

const (
	minPasswordLength = 8
	// bcrypt compares at most 72 bytes; longer input would silently truncate
	maxPasswordLength = 72

	maxDisplayNameLength = 64
)

func invalidField(description string) *authsdk.APIError {
	return authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeValidationFailed, description)
}

func validateEmail(email string) *authsdk.APIError {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalidField("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalidField("email is not a valid address")
	}
	return nil
}

func validatePassword(password string) *authsdk.APIError {
	switch {
	case password == "":
		return invalidField("password is required")
	case len(password) < minPasswordLength:
		return invalidField("password must be at least 8 characters")
	case len(password) > maxPasswordLength:
		return invalidField("password must be at most 72 characters")
	}
	return nil
}

func validateDisplayName(name string) *authsdk.APIError {
	if strings.TrimSpace(name) == "" {
		return invalidField("display_name is required")
	}
	if len(name) > maxDisplayNameLength {
		return invalidField("display_name must be at most 64 characters")
	}
	return nil
}
