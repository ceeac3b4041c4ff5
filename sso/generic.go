package sso

import (
	"context"
)

// DefaultResponseConverter reads the standard OpenID Connect claims (sub,
// email, given_name, family_name, name, picture) from the payload. It is the
// converter of last resort for generic providers; it never fails, so
// descriptors that must guarantee certain fields should bring their own
// converter.
func DefaultResponseConverter(_ context.Context, response map[string]interface{}, _ *ConvertContext) (*Identity, error) {
	str := func(key string) string {
		s, _ := response[key].(string)
		return s
	}
	return &Identity{
		ID:          str("sub"),
		Email:       str("email"),
		FirstName:   str("given_name"),
		LastName:    str("family_name"),
		DisplayName: str("name"),
		Picture:     str("picture"),
	}, nil
}

// NewProviderDescriptor builds a descriptor for a provider outside the
// built-in set from a pre-fetched discovery document and a response
// converter. The result behaves exactly like a statically coded descriptor;
// there is no distinct "generic" runtime type. A nil converter gets
// DefaultResponseConverter.
// Supported options: WithScopes, WithPKCE, WithChallengeMethod
func NewProviderDescriptor(name string, doc DiscoveryDocument, convert ResponseConverter, opt ...Option) (*ProviderDescriptor, error) {
	opts := getDescriptorOpts(opt...)
	if convert == nil {
		convert = DefaultResponseConverter
	}
	d := &ProviderDescriptor{
		Provider:              name,
		AuthorizationEndpoint: doc.AuthorizationEndpoint,
		TokenEndpoint:         doc.TokenEndpoint,
		UserInfoEndpoint:      doc.UserInfoEndpoint,
		Scopes:                opts.withScopes,
		UsesPKCE:              opts.withPKCE,
		ChallengeMethod:       opts.withChallengeMethod,
		Convert:               convert,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewProviderDescriptorFromURL builds a descriptor whose endpoints are
// resolved lazily from the discovery URL on the first login redirect.
// Supported options: WithScopes, WithPKCE, WithChallengeMethod
func NewProviderDescriptorFromURL(name string, discoveryURL string, convert ResponseConverter, opt ...Option) (*ProviderDescriptor, error) {
	opts := getDescriptorOpts(opt...)
	if convert == nil {
		convert = DefaultResponseConverter
	}
	d := &ProviderDescriptor{
		Provider:        name,
		DiscoveryURL:    discoveryURL,
		Scopes:          opts.withScopes,
		UsesPKCE:        opts.withPKCE,
		ChallengeMethod: opts.withChallengeMethod,
		Convert:         convert,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// descriptorOptions is the set of available options for the descriptor
// factories
type descriptorOptions struct {
	withScopes          []string
	withPKCE            bool
	withChallengeMethod ChallengeMethod
}

// descriptorDefaults is a handy way to get the defaults at runtime and
// during unit tests.
func descriptorDefaults() descriptorOptions {
	return descriptorOptions{}
}

// getDescriptorOpts gets the defaults and applies the opt overrides passed in
func getDescriptorOpts(opt ...Option) descriptorOptions {
	opts := descriptorDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithPKCE requests a PKCE challenge for every transaction of a factory-built
// descriptor.
func WithPKCE(use bool) Option {
	return func(o interface{}) {
		if o, ok := o.(*descriptorOptions); ok {
			o.withPKCE = use
		}
	}
}
