package providers

import (
	"context"

	"github.com/tomasvotava/go-sso/sso"
)

// Kakao returns a descriptor for login via Kakao OAuth.
func Kakao() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "kakao",
		AuthorizationEndpoint: "https://kauth.kakao.com/oauth/authorize",
		TokenEndpoint:         "https://kauth.kakao.com/oauth/token",
		UserInfoEndpoint:      "https://kapi.kakao.com/v2/user/me",
		Scopes:                []string{"openid"},
		Convert:               kakaoConvert,
	}
}

func kakaoConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	return &sso.Identity{
		DisplayName: getString(response, "properties", "nickname"),
	}, nil
}
