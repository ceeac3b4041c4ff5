package providers

import (
	"context"

	"github.com/tomasvotava/go-sso/sso"
)

const facebookGraphURL = "https://graph.facebook.com/v9.0"

// Facebook returns a descriptor for login via Facebook OAuth.
func Facebook() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "facebook",
		AuthorizationEndpoint: "https://www.facebook.com/v9.0/dialog/oauth",
		TokenEndpoint:         facebookGraphURL + "/oauth/access_token",
		UserInfoEndpoint:      facebookGraphURL + "/me?fields=id,name,email,first_name,last_name,picture",
		Scopes:                []string{"email"},
		Convert:               facebookConvert,
	}
}

func facebookConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	return &sso.Identity{
		ID:          getString(response, "id"),
		Email:       getString(response, "email"),
		FirstName:   getString(response, "first_name"),
		LastName:    getString(response, "last_name"),
		DisplayName: getString(response, "name"),
		Picture:     getString(response, "picture", "data", "url"),
	}, nil
}
