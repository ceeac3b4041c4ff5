package sso

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/oauth2"
)

// ConvertContext is handed to a ResponseConverter along with the raw user
// info payload. Converters that need provider-specific follow-up requests
// (GitHub's email listing, for example) can use the engine's http client and
// the access token from the exchange.
type ConvertContext struct {
	// Client is the engine's http client.
	Client *http.Client

	// Token is the token result of the exchange that preceded the user info
	// fetch.
	Token *Token
}

// ResponseConverter turns a provider's raw user info payload into the
// normalized Identity. A converter that finds a required field absent should
// return an error wrapping ErrIncompleteProfile instead of a partially
// filled identity.
type ResponseConverter func(ctx context.Context, response map[string]interface{}, cc *ConvertContext) (*Identity, error)

// ProviderDescriptor is the immutable description of one OAuth2/OIDC
// provider: where its endpoints live (statically, or behind a discovery
// URL), which scopes to request by default, how the token exchange wants to
// be authenticated, and how to read its user info response. Descriptors are
// created once at startup and shared read-only across transactions; all
// per-login state lives in the engine.
//
// Exactly one of {the three static endpoints, DiscoveryURL} must be set.
type ProviderDescriptor struct {
	// Provider identifies the provider ("google", "github", ...) and tags
	// every Identity produced through this descriptor.
	Provider string

	AuthorizationEndpoint string
	TokenEndpoint         string
	UserInfoEndpoint      string

	// DiscoveryURL is the OpenID Connect discovery document to resolve the
	// three endpoints from, lazily on first use.
	DiscoveryURL string

	// Scopes are the default scopes requested with every login; callers can
	// override them per redirect.
	Scopes []string

	// UsesPKCE requests a PKCE challenge for every login transaction.
	UsesPKCE bool

	// ChallengeMethod selects the PKCE challenge method; S256 when empty.
	ChallengeMethod ChallengeMethod

	// TokenAuthStyle tells the token endpoint request how to present the
	// client credentials. Leave zero (auto-detect) unless the provider is
	// known to insist on one style, like Apple's in-params requirement.
	TokenAuthStyle oauth2.AuthStyle

	// ExtraAuthParams are provider-mandated authorization URL parameters
	// (Apple's response_mode=form_post). Caller extras still merge over
	// them.
	ExtraAuthParams map[string]string

	// AdditionalHeaders are sent with the user info request (GitHub wants an
	// explicit accept header).
	AdditionalHeaders map[string]string

	// UseIDTokenForUserInfo reads the profile from the id_token claims
	// instead of calling the user info endpoint (Apple, LinkedIn).
	UseIDTokenForUserInfo bool

	// Convert normalizes the provider's user info response.
	Convert ResponseConverter
}

// UsesDiscovery reports whether the descriptor's endpoints come from a
// discovery document.
func (d *ProviderDescriptor) UsesDiscovery() bool {
	return d.DiscoveryURL != ""
}

// Validate verifies the descriptor is complete and that static endpoints and
// a discovery URL weren't mixed. It doesn't verify the endpoints are
// reachable.
func (d *ProviderDescriptor) Validate() error {
	const op = "ProviderDescriptor.Validate"
	if d == nil {
		return NewError(ErrNilParameter, WithOp(op), WithMsg("provider descriptor is nil"))
	}
	var result *multierror.Error
	if d.Provider == "" {
		result = multierror.Append(result, fmt.Errorf("provider identifier is empty"))
	}
	if d.Convert == nil {
		result = multierror.Append(result, fmt.Errorf("response converter is nil"))
	}
	static := d.AuthorizationEndpoint != "" || d.TokenEndpoint != "" || d.UserInfoEndpoint != ""
	switch {
	case d.DiscoveryURL != "" && static:
		result = multierror.Append(result, fmt.Errorf("static endpoints and a discovery URL are mutually exclusive"))
	case d.DiscoveryURL == "" && !static:
		result = multierror.Append(result, fmt.Errorf("either static endpoints or a discovery URL must be set"))
	case d.DiscoveryURL == "":
		if d.AuthorizationEndpoint == "" {
			result = multierror.Append(result, fmt.Errorf("authorization endpoint is empty"))
		}
		if d.TokenEndpoint == "" {
			result = multierror.Append(result, fmt.Errorf("token endpoint is empty"))
		}
		if d.UserInfoEndpoint == "" && !d.UseIDTokenForUserInfo {
			result = multierror.Append(result, fmt.Errorf("userinfo endpoint is empty"))
		}
	}
	if d.UsesPKCE {
		switch d.ChallengeMethod {
		case "", S256, Plain:
		default:
			result = multierror.Append(result, fmt.Errorf("challenge method %q: %w", d.ChallengeMethod, ErrUnsupportedChallengeMethod))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return NewError(ErrInvalidParameter, WithOp(op), WithMsg("provider descriptor is invalid"), WithWrap(err))
	}
	return nil
}

// challengeMethod returns the effective PKCE challenge method.
func (d *ProviderDescriptor) challengeMethod() ChallengeMethod {
	if d.ChallengeMethod == "" {
		return S256
	}
	return d.ChallengeMethod
}
