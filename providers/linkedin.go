package providers

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/tomasvotava/go-sso/sso"
)

// LinkedIn returns a descriptor for login via LinkedIn OAuth. LinkedIn wants
// the client credentials in the token request body and delivers the profile
// in the id_token claims.
func LinkedIn() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "linkedin",
		AuthorizationEndpoint: "https://www.linkedin.com/oauth/v2/authorization",
		TokenEndpoint:         "https://www.linkedin.com/oauth/v2/accessToken",
		Scopes:                []string{"openid", "profile", "email"},
		AdditionalHeaders:     map[string]string{"Accept": "application/json"},
		TokenAuthStyle:        oauth2.AuthStyleInParams,
		UseIDTokenForUserInfo: true,
		Convert:               linkedinConvert,
	}
}

func linkedinConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	return &sso.Identity{
		ID:        getString(response, "sub"),
		Email:     getString(response, "email"),
		FirstName: getString(response, "given_name"),
		LastName:  getString(response, "family_name"),
		Picture:   getString(response, "picture"),
	}, nil
}
