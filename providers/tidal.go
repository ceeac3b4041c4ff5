package providers

import (
	"context"

	"github.com/tomasvotava/go-sso/sso"
)

// Tidal returns a descriptor for login via Tidal OAuth. Tidal requires PKCE.
func Tidal() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "tidal",
		AuthorizationEndpoint: "https://login.tidal.com/authorize",
		TokenEndpoint:         "https://auth.tidal.com/v1/oauth2/token",
		UserInfoEndpoint:      "https://openapi.tidal.com/v2/users/me",
		Scopes:                []string{"user.read"},
		UsesPKCE:              true,
		Convert:               tidalConvert,
	}
}

func tidalConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	data := getMap(response, "data")
	if data == nil {
		return nil, sso.NewError(sso.ErrIncompleteProfile,
			sso.WithOp("providers.tidalConvert"),
			sso.WithMsg("profile response holds no data object"))
	}
	return &sso.Identity{
		ID:          getString(data, "id"),
		Email:       getString(data, "attributes", "email"),
		DisplayName: getString(data, "attributes", "username"),
	}, nil
}
