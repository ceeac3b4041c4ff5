package providers

import (
	"context"

	"github.com/tomasvotava/go-sso/sso"
)

// Naver returns a descriptor for login via Naver OAuth.
func Naver() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "naver",
		AuthorizationEndpoint: "https://nid.naver.com/oauth2.0/authorize",
		TokenEndpoint:         "https://nid.naver.com/oauth2.0/token",
		UserInfoEndpoint:      "https://openapi.naver.com/v1/nid/me",
		AdditionalHeaders:     map[string]string{"Accept": "application/json"},
		Convert:               naverConvert,
	}
}

func naverConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	return &sso.Identity{
		DisplayName: getString(response, "properties", "nickname"),
	}, nil
}
