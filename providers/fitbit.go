package providers

import (
	"context"

	"github.com/tomasvotava/go-sso/sso"
)

// Fitbit returns a descriptor for login via Fitbit OAuth.
func Fitbit() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider: "fitbit",
		// Fitbit bakes response_type into its documented authorize URL; the
		// engine keeps endpoint query parameters intact.
		AuthorizationEndpoint: "https://www.fitbit.com/oauth2/authorize?response_type=code",
		TokenEndpoint:         "https://api.fitbit.com/oauth2/token",
		UserInfoEndpoint:      "https://api.fitbit.com/1/user/-/profile.json",
		Scopes:                []string{"profile"},
		Convert:               fitbitConvert,
	}
}

func fitbitConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	user := getMap(response, "user")
	if user == nil {
		return nil, sso.NewError(sso.ErrIncompleteProfile,
			sso.WithOp("providers.fitbitConvert"),
			sso.WithMsg("profile response holds no user object"))
	}
	return &sso.Identity{
		ID:          getString(user, "encodedId"),
		FirstName:   getString(user, "fullName"),
		DisplayName: getString(user, "displayName"),
		Picture:     getString(user, "avatar"),
	}, nil
}
