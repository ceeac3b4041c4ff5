package sso

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	sdkhttp "github.com/tomasvotava/go-sso/sdk/http"
	"github.com/tomasvotava/go-sso/sso/internal/strutils"
)

// protectedAuthParams can never be overridden through WithExtraParams; they
// are what the CSRF defense hangs on.
var protectedAuthParams = map[string]struct{}{
	"client_id":     {},
	"response_type": {},
	"state":         {},
}

// Engine drives the authorization code flow for one ProviderDescriptor and
// one set of relying party credentials. It owns the ephemeral state of the
// current login transaction (CSRF state, PKCE verifier, last obtained
// tokens) and allows a single in-flight transaction at a time.
//
// The recommended pattern is scoped acquisition: construct an Engine per
// incoming request (construction is cheap, no network), drive one
// redirect/callback pair through it, and discard it. Sharing one instance
// across unrelated requests trades that isolation away; concurrent use is
// rejected with ErrTransactionInProgress rather than silently merged, so one
// caller's state and PKCE material can never leak into another's callback.
type Engine struct {
	descriptor   *ProviderDescriptor
	clientID     string
	clientSecret ClientSecret
	redirectURL  string
	scopes       []string
	allowHTTP    bool
	logger       hclog.Logger
	client       *http.Client
	resolver     *DiscoveryResolver
	states       StateStore

	mu        sync.Mutex
	tx        *loginTransaction
	lastToken *Token
}

// New creates an Engine for the given descriptor and relying party
// credentials. No network request is made; a descriptor with a discovery
// URL is resolved lazily on the first login redirect.
// Supported options: WithScopes, WithProviderCA, WithHTTPClient, WithLogger,
// WithInsecureAllowHTTP
func New(d *ProviderDescriptor, clientID string, clientSecret ClientSecret, redirectURL string, opt ...Option) (*Engine, error) {
	const op = "sso.New"
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if clientID == "" {
		return nil, NewError(ErrInvalidParameter, WithOp(op), WithMsg("client id is empty"))
	}
	opts := getEngineOpts(opt...)

	client := opts.withHTTPClient
	if client == nil {
		var err error
		if client, err = sdkhttp.NewClient(opts.withProviderCA); err != nil {
			if errors.Is(err, sdkhttp.ErrInvalidCertificatePem) {
				return nil, NewError(ErrInvalidCACert, WithOp(op), WithMsg("could not parse CA PEM value"), WithWrap(err))
			}
			return nil, NewError(ErrInvalidParameter, WithOp(op), WithMsg("could not get an http client"), WithWrap(err))
		}
	}
	resolver, err := NewDiscoveryResolver(client)
	if err != nil {
		return nil, err
	}

	logger := opts.withLogger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	scopes := opts.withScopes
	if len(scopes) == 0 {
		scopes = d.Scopes
	}

	return &Engine{
		descriptor:   d,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		scopes:       strutils.RemoveDuplicatesStable(scopes, false),
		allowHTTP:    opts.withInsecureAllowHTTP,
		logger:       logger.With("provider", d.Provider),
		client:       client,
		resolver:     resolver,
	}, nil
}

// Descriptor returns the descriptor the engine is bound to.
func (e *Engine) Descriptor() *ProviderDescriptor { return e.descriptor }

// Token returns the token result of the last successful verification,
// read-only. It is replaced on the next successful verification and cleared
// when a new login redirect is built.
func (e *Engine) Token() *Token {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastToken == nil {
		return nil
	}
	tk := *e.lastToken
	return &tk
}

// Done discards the in-flight login transaction, if any, including its state
// and PKCE material. Callers using scoped acquisition should defer Done
// so an abandoned flow can't linger into an unrelated one.
func (e *Engine) Done() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx != nil {
		e.tx.status = txFailed
		e.tx = nil
	}
	e.states.reset()
}

// endpoints resolves the effective endpoints, through the discovery resolver
// when the descriptor is discovery-based, and enforces the https posture.
func (e *Engine) endpoints(ctx context.Context) (*DiscoveryDocument, error) {
	const op = "Engine.endpoints"
	var doc *DiscoveryDocument
	if e.descriptor.UsesDiscovery() {
		var err error
		if doc, err = e.resolver.Resolve(ctx, e.descriptor.DiscoveryURL); err != nil {
			return nil, err
		}
	} else {
		doc = &DiscoveryDocument{
			AuthorizationEndpoint: e.descriptor.AuthorizationEndpoint,
			TokenEndpoint:         e.descriptor.TokenEndpoint,
			UserInfoEndpoint:      e.descriptor.UserInfoEndpoint,
		}
	}
	if !e.allowHTTP {
		for _, endpoint := range []string{doc.AuthorizationEndpoint, doc.TokenEndpoint, doc.UserInfoEndpoint} {
			if endpoint == "" {
				continue
			}
			u, err := url.Parse(endpoint)
			if err != nil {
				return nil, NewError(ErrInvalidParameter, WithOp(op), WithMsg(fmt.Sprintf("endpoint %q is not a valid URL", endpoint)), WithWrap(err))
			}
			if u.Scheme != "https" {
				return nil, NewError(ErrInsecureTransport, WithOp(op), WithMsg(fmt.Sprintf("endpoint %q does not use https; see WithInsecureAllowHTTP", endpoint)))
			}
		}
	}
	return doc, nil
}

// BuildLoginRedirect starts a new login transaction and returns the
// authorization URL the caller should redirect the user to. It fails with
// ErrTransactionInProgress while an earlier transaction is still awaiting
// its callback on this instance.
//
// The URL carries the client id, redirect URI, response_type=code, the
// requested scopes, the transaction's state, and the PKCE challenge when the
// descriptor asks for one. Caller extras merge last and may override
// everything except client_id, response_type and state.
// Supported options: WithRedirectURL, WithScopes, WithExtraParams, WithState
func (e *Engine) BuildLoginRedirect(ctx context.Context, opt ...Option) (string, error) {
	const op = "Engine.BuildLoginRedirect"
	opts := getRedirectOpts(opt...)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx != nil {
		return "", NewError(ErrTransactionInProgress, WithOp(op), WithMsg("verify the pending callback or call Done first"))
	}

	doc, err := e.endpoints(ctx)
	if err != nil {
		return "", err
	}

	redirectURI := opts.withRedirectURL
	if redirectURI == "" {
		redirectURI = e.redirectURL
	}
	if redirectURI == "" {
		return "", NewError(ErrInvalidParameter, WithOp(op), WithMsg("redirect URL must be provided, either at construction or request time"))
	}

	scopes := e.scopes
	if len(opts.withScopes) > 0 {
		scopes = strutils.RemoveDuplicatesStable(opts.withScopes, false)
	}

	var verifier *CodeVerifier
	if e.descriptor.UsesPKCE {
		if verifier, err = NewCodeVerifier(WithChallengeMethod(e.descriptor.challengeMethod())); err != nil {
			return "", err
		}
	}

	authURL, err := url.Parse(doc.AuthorizationEndpoint)
	if err != nil {
		return "", NewError(ErrInvalidParameter, WithOp(op), WithMsg("authorization endpoint is not a valid URL"), WithWrap(err))
	}

	// The state is issued last: nothing may arm the store unless this call
	// also installs the transaction the callback will be validated against.
	state, err := e.states.Issue(opts.withState)
	if err != nil {
		return "", err
	}
	// Some providers bake query parameters into their endpoint URLs; keep
	// them and set ours over them.
	q := authURL.Query()
	q.Set("response_type", "code")
	q.Set("client_id", e.clientID)
	q.Set("redirect_uri", redirectURI)
	if len(scopes) > 0 {
		q.Set("scope", strings.Join(scopes, " "))
	}
	q.Set("state", state)
	if verifier != nil {
		q.Set("code_challenge", verifier.Challenge())
		q.Set("code_challenge_method", string(verifier.Method()))
	}
	for k, v := range e.descriptor.ExtraAuthParams {
		if _, protected := protectedAuthParams[k]; !protected {
			q.Set(k, v)
		}
	}
	for k, v := range opts.withExtraParams {
		if _, protected := protectedAuthParams[k]; !protected {
			q.Set(k, v)
		}
	}
	authURL.RawQuery = q.Encode()

	e.tx = newLoginTransaction(state, verifier, redirectURI, scopes)
	e.lastToken = nil
	e.logger.Debug("built login redirect", "tx", e.tx.id, "pkce", verifier != nil)
	return authURL.String(), nil
}

// VerifyAndProcess completes the login transaction from the provider's
// callback: it validates the returned state, exchanges the code for tokens,
// fetches the user info and converts it into the normalized Identity.
//
// Any failure is terminal for the transaction; the state value cannot be
// replayed and a fresh BuildLoginRedirect is needed for another attempt. On
// success the token result stays readable through Token.
func (e *Engine) VerifyAndProcess(ctx context.Context, cb Callback) (identity *Identity, retErr error) {
	const op = "Engine.VerifyAndProcess"
	if cb == nil {
		return nil, NewError(ErrNilParameter, WithOp(op), WithMsg("callback is nil"))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	tx := e.tx
	defer func() {
		if tx != nil {
			if retErr != nil {
				tx.status = txFailed
			} else {
				tx.status = txVerified
			}
		}
		// The transaction and its state entry are finished either way.
		e.tx = nil
		e.states.reset()
		if retErr != nil && tx != nil {
			e.logger.Debug("login verification failed", "tx", tx.id, "kind", KindOf(retErr).String())
		}
	}()

	params := cb.QueryParams()
	code := params.Get("code")
	if code == "" {
		msg := "callback query holds no code"
		if reason := params.Get("error"); reason != "" {
			msg = fmt.Sprintf("provider returned error %q", reason)
			if desc := params.Get("error_description"); desc != "" {
				msg = fmt.Sprintf("provider returned error %q: %s", reason, desc)
			}
		}
		return nil, NewError(ErrMissingCode, WithOp(op), WithMsg(msg))
	}

	// Fail closed on both checks: a callback is only acceptable when a live
	// transaction exists and the returned state matches its entry.
	if tx == nil {
		return nil, NewError(ErrStateMismatch, WithOp(op), WithMsg("no login transaction is awaiting a callback"))
	}
	if err := e.states.Validate(params.Get("state")); err != nil {
		return nil, err
	}

	doc, err := e.endpoints(ctx)
	if err != nil {
		return nil, err
	}

	tk, err := e.exchange(ctx, doc, tx, code)
	if err != nil {
		return nil, err
	}
	e.lastToken = tk

	raw, err := e.userInfo(ctx, doc, tk)
	if err != nil {
		return nil, err
	}

	converted, err := e.descriptor.Convert(ctx, raw, &ConvertContext{Client: e.client, Token: tk})
	if err != nil {
		if errors.Is(err, ErrIncompleteProfile) {
			return nil, err
		}
		return nil, NewError(ErrIncompleteProfile, WithOp(op), WithWrap(err))
	}
	if converted == nil {
		return nil, NewError(ErrIncompleteProfile, WithOp(op), WithMsg("converter returned no identity"))
	}
	if converted.Provider == "" {
		tagged := *converted
		tagged.Provider = e.descriptor.Provider
		converted = &tagged
	}
	e.logger.Debug("login verified", "tx", tx.id)
	return converted, nil
}

// exchange performs the single token exchange request for the transaction's
// code.
func (e *Engine) exchange(ctx context.Context, doc *DiscoveryDocument, tx *loginTransaction, code string) (*Token, error) {
	const op = "Engine.exchange"
	conf := oauth2.Config{
		ClientID:     e.clientID,
		ClientSecret: string(e.clientSecret),
		RedirectURL:  tx.redirectURI,
		Scopes:       tx.scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   doc.AuthorizationEndpoint,
			TokenURL:  doc.TokenEndpoint,
			AuthStyle: e.descriptor.TokenAuthStyle,
		},
	}
	var exchangeOpts []oauth2.AuthCodeOption
	if tx.verifier != nil {
		exchangeOpts = append(exchangeOpts, oauth2.SetAuthURLParam("code_verifier", tx.verifier.Verifier()))
	}

	oauth2Token, err := conf.Exchange(sdkhttp.OauthClientContext(ctx, e.client), code, exchangeOpts...)
	if err != nil {
		return nil, NewError(ErrTokenExchange, WithOp(op), WithMsg("unable to exchange auth code with provider"), WithWrap(err))
	}
	tk, err := NewToken(oauth2Token)
	if err != nil {
		return nil, NewError(ErrTokenExchange, WithOp(op), WithMsg("malformed token response"), WithWrap(err))
	}
	return tk, nil
}

// userInfo obtains the raw profile payload, either from the user info
// endpoint or, for descriptors that ask for it, from the id_token claims.
func (e *Engine) userInfo(ctx context.Context, doc *DiscoveryDocument, tk *Token) (map[string]interface{}, error) {
	const op = "Engine.userInfo"
	if e.descriptor.UseIDTokenForUserInfo {
		claims, err := tk.ID.Claims()
		if err != nil {
			return nil, NewError(ErrUserInfoFetch, WithOp(op), WithMsg("unable to read profile from id_token"), WithWrap(err))
		}
		return claims, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.UserInfoEndpoint, nil)
	if err != nil {
		return nil, NewError(ErrUserInfoFetch, WithOp(op), WithMsg("unable to create user info request"), WithWrap(err))
	}
	req.Header.Set("Authorization", "Bearer "+string(tk.Access))
	req.Header.Set("Accept", "application/json")
	for k, v := range e.descriptor.AdditionalHeaders {
		req.Header.Set(k, v)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, NewError(ErrUserInfoFetch, WithOp(op), WithWrap(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewError(ErrUserInfoFetch, WithOp(op), WithMsg(fmt.Sprintf("user info endpoint returned status %d", resp.StatusCode)))
	}
	var raw map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, NewError(ErrUserInfoFetch, WithOp(op), WithMsg("unable to decode user info response"), WithWrap(err))
	}
	return raw, nil
}

// redirectOptions is the set of available options for BuildLoginRedirect
type redirectOptions struct {
	withRedirectURL string
	withScopes      []string
	withExtraParams map[string]string
	withState       string
}

// redirectDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func redirectDefaults() redirectOptions {
	return redirectOptions{}
}

// getRedirectOpts gets the defaults and applies the opt overrides passed in
func getRedirectOpts(opt ...Option) redirectOptions {
	opts := redirectDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithRedirectURL overrides the engine's redirect URL for one login
// transaction.
func WithRedirectURL(u string) Option {
	return func(o interface{}) {
		if o, ok := o.(*redirectOptions); ok {
			o.withRedirectURL = u
		}
	}
}

// WithExtraParams adds query parameters to the authorization URL. They merge
// last and may override the engine's defaults, except for client_id,
// response_type and state, which are protected.
func WithExtraParams(params map[string]string) Option {
	return func(o interface{}) {
		if o, ok := o.(*redirectOptions); ok {
			o.withExtraParams = params
		}
	}
}

// WithState supplies the caller's own state value instead of a minted one.
// The value is treated as opaque: it is only safe for correlating the
// callback with the request that started it. Don't carry payload (return
// URLs and the like) in it - the state arrives back unauthenticated, and
// anything the application reads out of it can be injected by an attacker.
// Keep such data in caller-owned server-side session storage instead.
func WithState(state string) Option {
	return func(o interface{}) {
		if o, ok := o.(*redirectOptions); ok {
			o.withState = state
		}
	}
}
