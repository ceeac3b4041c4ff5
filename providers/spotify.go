package providers

import (
	"context"

	"github.com/tomasvotava/go-sso/sso"
)

// Spotify returns a descriptor for login via Spotify OAuth.
func Spotify() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "spotify",
		AuthorizationEndpoint: "https://accounts.spotify.com/authorize",
		TokenEndpoint:         "https://accounts.spotify.com/api/token",
		UserInfoEndpoint:      "https://api.spotify.com/v1/me",
		Scopes:                []string{"user-read-private", "user-read-email"},
		Convert:               spotifyConvert,
	}
}

func spotifyConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	var picture string
	if images, ok := response["images"].([]interface{}); ok && len(images) > 0 {
		if image, ok := images[0].(map[string]interface{}); ok {
			picture = getString(image, "url")
		}
	}
	return &sso.Identity{
		ID:          getString(response, "id"),
		Email:       getString(response, "email"),
		DisplayName: getString(response, "display_name"),
		Picture:     picture,
	}, nil
}
