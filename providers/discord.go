package providers

import (
	"context"
	"fmt"

	"github.com/tomasvotava/go-sso/sso"
)

// Discord returns a descriptor for login via Discord OAuth.
func Discord() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "discord",
		AuthorizationEndpoint: "https://discord.com/oauth2/authorize",
		TokenEndpoint:         "https://discord.com/api/oauth2/token",
		UserInfoEndpoint:      "https://discord.com/api/users/@me",
		Scopes:                []string{"identify", "email", "openid"},
		Convert:               discordConvert,
	}
}

func discordConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	userID := getString(response, "id")
	var picture string
	if avatar := getString(response, "avatar"); userID != "" && avatar != "" {
		picture = fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", userID, avatar)
	}
	return &sso.Identity{
		ID:          userID,
		Email:       getString(response, "email"),
		FirstName:   getString(response, "username"),
		DisplayName: getString(response, "global_name"),
		Picture:     picture,
	}, nil
}
