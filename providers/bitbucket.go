package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tomasvotava/go-sso/sso"
)

const bitbucketEmailsEndpoint = "https://api.bitbucket.org/2.0/user/emails"

// Bitbucket returns a descriptor for login via Bitbucket OAuth. The profile
// endpoint carries no email; it is read from the emails listing.
func Bitbucket() *sso.ProviderDescriptor {
	return &sso.ProviderDescriptor{
		Provider:              "bitbucket",
		AuthorizationEndpoint: "https://bitbucket.org/site/oauth2/authorize",
		TokenEndpoint:         "https://bitbucket.org/site/oauth2/access_token",
		UserInfoEndpoint:      "https://api.bitbucket.org/2.0/user",
		Scopes:                []string{"account", "email"},
		Convert:               bitbucketConvert,
	}
}

func bitbucketConvert(ctx context.Context, response map[string]interface{}, cc *sso.ConvertContext) (*sso.Identity, error) {
	var email string
	if cc != nil && cc.Client != nil && cc.Token != nil {
		var err error
		if email, err = bitbucketEmail(ctx, cc); err != nil {
			return nil, err
		}
	}
	return &sso.Identity{
		ID:          strings.Trim(getString(response, "uuid"), "{}"),
		Email:       email,
		FirstName:   getString(response, "nickname"),
		DisplayName: getString(response, "display_name"),
		Picture:     getString(response, "links", "avatar", "href"),
	}, nil
}

func bitbucketEmail(ctx context.Context, cc *sso.ConvertContext) (string, error) {
	const op = "providers.bitbucketEmail"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bitbucketEmailsEndpoint, nil)
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
	var listing struct {
		Values []struct {
			Email string `json:"email"`
		} `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return "", sso.NewError(sso.ErrIncompleteProfile, sso.WithOp(op), sso.WithMsg("unable to decode emails listing"), sso.WithWrap(err))
	}
	if len(listing.Values) == 0 {
		return "", nil
	}
	return listing.Values[0].Email, nil
}
