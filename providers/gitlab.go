package providers

import (
	"context"

	"github.com/tomasvotava/go-sso/sso"
)

// GitLab returns a descriptor for login via GitLab OAuth.
func GitLab() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "gitlab",
		AuthorizationEndpoint: "https://gitlab.com/oauth/authorize",
		TokenEndpoint:         "https://gitlab.com/oauth/token",
		UserInfoEndpoint:      "https://gitlab.com/api/v4/user",
		Scopes:                []string{"read_user", "openid", "profile"},
		AdditionalHeaders:     map[string]string{"Accept": "application/json"},
		Convert:               gitlabConvert,
	}
}

func gitlabConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	return &sso.Identity{
		ID:          asString(response["id"]),
		Email:       getString(response, "email"),
		DisplayName: getString(response, "username"),
		Picture:     getString(response, "avatar_url"),
	}, nil
}
