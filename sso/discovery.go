package sso

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-multierror"
	gocache "github.com/patrickmn/go-cache"
)

// DiscoveryDocument carries the three endpoints the engine needs from an
// OpenID Connect discovery document. Everything else in the provider's
// document is ignored.
type DiscoveryDocument struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserInfoEndpoint      string `json:"userinfo_endpoint"`
}

// validate verifies that all three endpoints are present.
func (d *DiscoveryDocument) validate() error {
	var result *multierror.Error
	if d.AuthorizationEndpoint == "" {
		result = multierror.Append(result, fmt.Errorf("authorization_endpoint is missing"))
	}
	if d.TokenEndpoint == "" {
		result = multierror.Append(result, fmt.Errorf("token_endpoint is missing"))
	}
	if d.UserInfoEndpoint == "" {
		result = multierror.Append(result, fmt.Errorf("userinfo_endpoint is missing"))
	}
	return result.ErrorOrNil()
}

// DiscoveryResolver fetches OpenID Connect discovery documents and caches
// them keyed by URL. A document is fetched at most once per resolver; an
// engine owns one resolver, so the document lives exactly as long as the
// engine does and is never re-fetched per login.
type DiscoveryResolver struct {
	client *http.Client
	cache  *gocache.Cache
}

// NewDiscoveryResolver creates a resolver that fetches with the given http
// client.
func NewDiscoveryResolver(client *http.Client) (*DiscoveryResolver, error) {
	const op = "NewDiscoveryResolver"
	if client == nil {
		return nil, NewError(ErrNilParameter, WithOp(op), WithMsg("http client is nil"))
	}
	return &DiscoveryResolver{
		client: client,
		cache:  gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// Resolve returns the discovery document behind discoveryURL, fetching it on
// the first call and serving every later call from the cache. Fails with
// ErrDiscovery when the document is unreachable, malformed, or missing any of
// the three required endpoints.
func (r *DiscoveryResolver) Resolve(ctx context.Context, discoveryURL string) (*DiscoveryDocument, error) {
	const op = "DiscoveryResolver.Resolve"
	if discoveryURL == "" {
		return nil, NewError(ErrInvalidParameter, WithOp(op), WithMsg("discovery URL is empty"))
	}
	if cached, ok := r.cache.Get(discoveryURL); ok {
		return cached.(*DiscoveryDocument), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return nil, NewError(ErrDiscovery, WithOp(op), WithMsg("unable to create discovery request"), WithWrap(err))
	}
	req.Header.Set("Accept", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, NewError(ErrDiscovery, WithOp(op), WithMsg("discovery document is unreachable"), WithWrap(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, NewError(ErrDiscovery, WithOp(op), WithMsg(fmt.Sprintf("discovery endpoint returned status %d", resp.StatusCode)))
	}

	var doc DiscoveryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, NewError(ErrDiscovery, WithOp(op), WithMsg("unable to decode discovery document"), WithWrap(err))
	}
	if err := doc.validate(); err != nil {
		return nil, NewError(ErrDiscovery, WithOp(op), WithWrap(err))
	}

	r.cache.SetDefault(discoveryURL, &doc)
	return &doc, nil
}
