package sso

import (
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// ClientSecret is the relying party secret. Its string and json
// representations are redacted so a secret can't leak through logging.
type ClientSecret string

// RedactedClientSecret is the redacted string or json for an oauth client secret
const RedactedClientSecret = "[REDACTED: client secret]"

// String will redact the client secret
func (t ClientSecret) String() string {
	return RedactedClientSecret
}

// MarshalJSON will redact the client secret
func (t ClientSecret) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedClientSecret)
}

// engineOptions is the set of available options when constructing an Engine
type engineOptions struct {
	withScopes            []string
	withProviderCA        string
	withHTTPClient        *http.Client
	withLogger            hclog.Logger
	withInsecureAllowHTTP bool
}

// engineDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func engineDefaults() engineOptions {
	return engineOptions{}
}

// getEngineOpts gets the defaults and applies the opt overrides passed in
func getEngineOpts(opt ...Option) engineOptions {
	opts := engineDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithScopes overrides the descriptor's default scopes. It applies both when
// constructing an Engine and per BuildLoginRedirect call, where the
// per-call override wins.
func WithScopes(scopes ...string) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *engineOptions:
			v.withScopes = scopes
		case *redirectOptions:
			v.withScopes = scopes
		case *descriptorOptions:
			v.withScopes = scopes
		}
	}
}

// WithProviderCA provides an optional CA cert PEM used when sending requests
// to the provider.
func WithProviderCA(cert string) Option {
	return func(o interface{}) {
		if o, ok := o.(*engineOptions); ok {
			o.withProviderCA = cert
		}
	}
}

// WithHTTPClient provides an optional http client for the engine, replacing
// the default cleanhttp one. Timeout policy belongs to this client; the
// engine imposes none of its own.
func WithHTTPClient(client *http.Client) Option {
	return func(o interface{}) {
		if o, ok := o.(*engineOptions); ok {
			o.withHTTPClient = client
		}
	}
}

// WithLogger provides an optional hclog.Logger for the engine. Without it
// the engine stays silent.
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*engineOptions); ok {
			o.withLogger = l
		}
	}
}

// WithInsecureAllowHTTP permits non-https provider endpoints. Development
// only; without this option any http:// endpoint fails with
// ErrInsecureTransport.
func WithInsecureAllowHTTP(allow bool) Option {
	return func(o interface{}) {
		if o, ok := o.(*engineOptions); ok {
			o.withInsecureAllowHTTP = allow
		}
	}
}
