package providers

import (
	"context"

	"github.com/tomasvotava/go-sso/sso"
)

// Soundcloud returns a descriptor for login via Soundcloud OAuth.
func Soundcloud() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "soundcloud",
		AuthorizationEndpoint: "https://secure.soundcloud.com/authorize",
		TokenEndpoint:         "https://secure.soundcloud.com/oauth/token",
		UserInfoEndpoint:      "https://api.soundcloud.com/me",
		Scopes:                []string{"openid"},
		Convert:               soundcloudConvert,
	}
}

func soundcloudConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	return &sso.Identity{
		ID:          asString(response["id"]),
		FirstName:   getString(response, "first_name"),
		LastName:    getString(response, "last_name"),
		DisplayName: getString(response, "username"),
		Picture:     getString(response, "avatar_url"),
	}, nil
}
