package providers

import (
	"context"
	"fmt"

	"github.com/tomasvotava/go-sso/sso"
)

// GoogleDiscoveryURL is Google's OpenID Connect discovery document.
const GoogleDiscoveryURL = "https://accounts.google.com/.well-known/openid-configuration"

// Google returns a descriptor for login via Google OAuth. Accounts whose
// email Google hasn't verified are rejected.
func Google() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:     "google",
		DiscoveryURL: GoogleDiscoveryURL,
		Scopes:       []string{"openid", "email", "profile"},
		Convert:      googleConvert,
	}
}

func googleConvert(_ context.Context, response map[string]interface{}, _ *sso.ConvertContext) (*sso.Identity, error) {
	if verified, _ := response["email_verified"].(bool); !verified {
		return nil, sso.NewError(sso.ErrIncompleteProfile,
			sso.WithOp("providers.googleConvert"),
			sso.WithMsg(fmt.Sprintf("user %q is not verified with google", getString(response, "email"))))
	}
	return &sso.Identity{
		ID:          getString(response, "sub"),
		Email:       getString(response, "email"),
		FirstName:   getString(response, "given_name"),
		LastName:    getString(response, "family_name"),
		DisplayName: getString(response, "name"),
		Picture:     getString(response, "picture"),
	}, nil
}
