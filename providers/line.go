package providers

import (
	"context"

	"github.com/tomasvotava/go-sso/sso"
)

// Line returns a descriptor for login via LINE OAuth.
func Line() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "line",
		AuthorizationEndpoint: "https://access.line.me/oauth2/v2.1/authorize",
		TokenEndpoint:         "https://api.line.me/oauth2/v2.1/token",
		UserInfoEndpoint:      "https://api.line.me/oauth2/v2.1/userinfo",
		Scopes:                []string{"email", "profile", "openid"},
		Convert:               lineConvert,
	}
}

func lineConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	return &sso.Identity{
		ID:          getString(response, "sub"),
		Email:       getString(response, "email"),
		DisplayName: getString(response, "name"),
		Picture:     getString(response, "picture"),
	}, nil
}
