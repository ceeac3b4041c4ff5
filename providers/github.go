package providers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tomasvotava/go-sso/sso"
)

const githubEmailsEndpoint = "https://api.github.com/user/emails"

// GitHub returns a descriptor for login via GitHub OAuth. Users who keep
// their email private are resolved through the emails endpoint; a user with
// no usable email at all is rejected.
func GitHub() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "github",
		AuthorizationEndpoint: "https://github.com/login/oauth/authorize",
		TokenEndpoint:         "https://github.com/login/oauth/access_token",
		UserInfoEndpoint:      "https://api.github.com/user",
		Scopes:                []string{"user:email"},
		AdditionalHeaders:     map[string]string{"Accept": "application/json"},
		Convert:               githubConvert,
	}
}

func githubConvert(ctx context.Context, response map[string]interface{}, cc *sso.ConvertContext) (*sso.Identity, error) {
	const op = "providers.githubConvert"
	email := getString(response, "email")
	if email == "" && cc != nil && cc.Client != nil && cc.Token != nil {
		// A private email is not returned on the profile; it has to be read
		// from the emails listing.
		var err error
		if email, err = githubPrimaryEmail(ctx, cc); err != nil {
			return nil, err
		}
	}
	if email == "" {
		return nil, sso.NewError(sso.ErrIncompleteProfile, sso.WithOp(op), sso.WithMsg("user has no usable email"))
	}
	return &sso.Identity{
		ID:          asString(response["id"]),
		Email:       email,
		DisplayName: getString(response, "login"),
		Picture:     getString(response, "avatar_url"),
	}, nil
}

func githubPrimaryEmail(ctx context.Context, cc *sso.ConvertContext) (string, error) {
	const op = "providers.githubPrimaryEmail"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubEmailsEndpoint, nil)
	if err != nil {
		return "", sso.NewError(sso.ErrIncompleteProfile, sso.WithOp(op), sso.WithWrap(err))
	}
	req.Header.Set("Authorization", "Bearer "+string(cc.Token.Access))
	req.Header.Set("Accept", "application/json")
	resp, err := cc.Client.Do(req)
	if err != nil {
		return "", sso.NewError(sso.ErrIncompleteProfile, sso.WithOp(op), sso.WithMsg("unable to list emails"), sso.WithWrap(err))
	}
	defer resp.Body.Close()
	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", sso.NewError(sso.ErrIncompleteProfile, sso.WithOp(op), sso.WithMsg("unable to decode emails listing"), sso.WithWrap(err))
	}
	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	return "", nil
}
