package providers

import (
	"context"
	"fmt"

	"github.com/tomasvotava/go-sso/sso"
)

// DefaultMicrosoftTenant serves the multi-tenant login endpoint.
const DefaultMicrosoftTenant = "common"

// Microsoft returns a descriptor for login via Microsoft OAuth. An empty
// tenant means the multi-tenant "common" endpoint.
func Microsoft(tenant string) *sso.ProviderDescriptor {
	if tenant == "" {
		tenant = DefaultMicrosoftTenant
	}
	return &sso.ProviderDescriptor{
		Provider:              "microsoft",
		AuthorizationEndpoint: fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/authorize", tenant),
		TokenEndpoint:         fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", tenant),
		UserInfoEndpoint:      "https://graph.microsoft.com/v1.0/me",
		Scopes:                []string{"openid"},
		Convert:               microsoftConvert,
	}
}

func microsoftConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	email := getString(response, "mail")
	if email == "" {
		return nil, sso.NewError(sso.ErrIncompleteProfile,
			sso.WithOp("providers.microsoftConvert"),
			sso.WithMsg("graph profile holds no mail"))
	}
	return &sso.Identity{
		Email:       email,
		DisplayName: getString(response, "displayName"),
	}, nil
}
