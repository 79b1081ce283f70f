package http

import (
	"github.com/ateekshsoni/gatekeeper-api/internal/auth/domain"
	"github.com/ateekshsoni/gatekeeper-api/internal/auth/service"
	"github.com/ateekshsoni/gatekeeper-api/pkg/authsdk"
)

func toUserResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Active:      u.IsActive,
		Profile:     toProfileResponse(u.Profile),
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
	}
}

func toProfileResponse(p domain.Profile) authsdk.Profile {
	return authsdk.Profile{
		Preferences: authsdk.Preferences{
			Theme:      p.Preferences.Theme,
			Newsletter: p.Preferences.Newsletter,
		},
		Address: authsdk.Address{
			Street:     p.Address.Street,
			City:       p.Address.City,
			Country:    p.Address.Country,
			PostalCode: p.Address.PostalCode,
		},
	}
}

func fromProfileRequest(p authsdk.Profile) domain.Profile {
	return domain.Profile{
		Preferences: domain.Preferences{
			Theme:      p.Preferences.Theme,
			Newsletter: p.Preferences.Newsletter,
		},
		Address: domain.Address{
			Street:     p.Address.Street,
			City:       p.Address.City,
			Country:    p.Address.Country,
			PostalCode: p.Address.PostalCode,
		},
	}
}

func toAuthResponse(sess *service.Session) authsdk.AuthResponse {
	return authsdk.AuthResponse{
		User:        toUserResponse(sess.User),
		AccessToken: sess.Tokens.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(sess.Tokens.ExpiresIn.Seconds()),
	}
}
