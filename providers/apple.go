package providers

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/tomasvotava/go-sso/sso"
)

// Apple returns a descriptor for login via Apple ID OAuth. Apple requires
// response_mode=form_post when profile scopes are requested and has no user
// info endpoint; the profile comes from the id_token claims.
func Apple() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "apple",
		AuthorizationEndpoint: "https://appleid.apple.com/auth/authorize",
		TokenEndpoint:         "https://appleid.apple.com/auth/token",
		Scopes:                []string{"openid", "email"},
		ExtraAuthParams:       map[string]string{"response_mode": "form_post"},
		TokenAuthStyle:        oauth2.AuthStyleInParams,
		UseIDTokenForUserInfo: true,
		Convert:               appleConvert,
	}
}

func appleConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	return &sso.Identity{
		ID:    getString(response, "sub"),
		Email: getString(response, "email"),
	}, nil
}
