package sso

import (
	"bytes"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestProvider is a local server emulating the provider-side endpoints of the
// authorization code flow (discovery, token, user info), which makes writing
// engine tests much easier. Responses are plain JSON stubs the test
// configures; the server never signs anything.
//
// It serves TLS with a self-signed certificate; hand CACert to the engine
// via WithProviderCA.
type TestProvider struct {
	t          *testing.T
	httpServer *httptest.Server
	caCert     string

	mu                 sync.Mutex
	tokenResponse      map[string]interface{}
	tokenStatusCode    int
	userInfoResponse   map[string]interface{}
	userInfoStatusCode int
	callCounts         map[string]int
	lastTokenRequest   map[string][]string
}

// StartTestProvider creates a disposable TestProvider; it is stopped via
// t.Cleanup.
func StartTestProvider(t *testing.T) *TestProvider {
	t.Helper()
	require := require.New(t)

	p := &TestProvider{
		t: t,
		tokenResponse: map[string]interface{}{
			"access_token": "test-access-token",
			"token_type":   "Bearer",
		},
		userInfoResponse: map[string]interface{}{
			"sub": "test-subject",
		},
		callCounts: map[string]int{},
	}
	p.httpServer = httptest.NewUnstartedServer(p)
	p.httpServer.StartTLS()
	t.Cleanup(p.httpServer.Close)

	cert := p.httpServer.Certificate()
	var buf bytes.Buffer
	err := pem.Encode(&buf, &pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
	require.NoError(err)
	p.caCert = buf.String()

	return p
}

// Stop stops the running TestProvider.
func (p *TestProvider) Stop() {
	p.httpServer.Close()
}

// CACert returns the pem-encoded CA certificate used by the TestProvider.
func (p *TestProvider) CACert() string { return p.caCert }

// Addr returns the TestProvider's base URL.
func (p *TestProvider) Addr() string { return p.httpServer.URL }

// DiscoveryURL returns the URL of the TestProvider's discovery document.
func (p *TestProvider) DiscoveryURL() string {
	return p.httpServer.URL + "/.well-known/openid-configuration"
}

// Document returns the TestProvider's endpoints as a discovery document.
func (p *TestProvider) Document() DiscoveryDocument {
	return DiscoveryDocument{
		AuthorizationEndpoint: p.httpServer.URL + "/authorize",
		TokenEndpoint:         p.httpServer.URL + "/token",
		UserInfoEndpoint:      p.httpServer.URL + "/userinfo",
	}
}

// SetTokenResponse configures the JSON payload of the token endpoint.
func (p *TestProvider) SetTokenResponse(response map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokenResponse = response
}

// SetTokenStatusCode forces a non-200 status from the token endpoint.
func (p *TestProvider) SetTokenStatusCode(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokenStatusCode = code
}

// SetUserInfoResponse configures the JSON payload of the user info endpoint.
func (p *TestProvider) SetUserInfoResponse(response map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userInfoResponse = response
}

// SetUserInfoStatusCode forces a non-200 status from the user info endpoint.
func (p *TestProvider) SetUserInfoStatusCode(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userInfoStatusCode = code
}

// CallCount reports how many requests the given path has received, e.g.
// CallCount("/token").
func (p *TestProvider) CallCount(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCounts[path]
}

// LastTokenRequest returns the form values of the most recent token endpoint
// request, nil when there was none.
func (p *TestProvider) LastTokenRequest() map[string][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastTokenRequest
}

// ServeHTTP implements the test provider's endpoints.
func (p *TestProvider) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCounts[req.URL.Path]++

	switch req.URL.Path {
	case "/.well-known/openid-configuration":
		writeTestJSON(p.t, w, http.StatusOK, map[string]interface{}{
			"authorization_endpoint": p.httpServer.URL + "/authorize",
			"token_endpoint":         p.httpServer.URL + "/token",
			"userinfo_endpoint":      p.httpServer.URL + "/userinfo",
		})
	case "/token":
		_ = req.ParseForm()
		p.lastTokenRequest = req.PostForm
		if p.tokenStatusCode != 0 {
			writeTestJSON(p.t, w, p.tokenStatusCode, map[string]interface{}{"error": "invalid_grant"})
			return
		}
		writeTestJSON(p.t, w, http.StatusOK, p.tokenResponse)
	case "/userinfo":
		if p.userInfoStatusCode != 0 {
			writeTestJSON(p.t, w, p.userInfoStatusCode, map[string]interface{}{"error": "invalid_token"})
			return
		}
		writeTestJSON(p.t, w, http.StatusOK, p.userInfoResponse)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, status int, body map[string]interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}
