package sso_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomasvotava/go-sso/sso"
)

// This example shows the full life of one login transaction: building the
// authorization redirect and completing it from the provider's callback.
func Example() {
	d, err := sso.NewProviderDescriptorFromURL(
		"acme",
		"https://id.acme.example.com/.well-known/openid-configuration",
		nil, // the default converter reads the standard oidc claims
		sso.WithScopes("openid", "email", "profile"),
		sso.WithPKCE(true),
	)
	if err != nil {
		// handle invalid descriptor
		return
	}

	e, err := sso.New(d, "client-id", "client-secret", "https://rp.example.com/callback")
	if err != nil {
		return
	}
	defer e.Done()

	url, err := e.BuildLoginRedirect(context.Background())
	if err != nil {
		return
	}
	fmt.Println("redirect the user to:", url)

	// later, in the callback handler:
	var req *http.Request // the provider's redirect back to us
	cb, err := sso.CallbackFromRequest(req)
	if err != nil {
		return
	}
	identity, err := e.VerifyAndProcess(context.Background(), cb)
	if err != nil {
		if sso.KindOf(err) == sso.ErrSecurityViolation {
			// a tampered or replayed callback; never treat as a login
			return
		}
		return
	}
	fmt.Println("logged in:", identity.Email)
}

// Callers can classify failures without inspecting error strings.
func ExampleKindOf() {
	err := sso.NewError(sso.ErrStateMismatch, sso.WithOp("Engine.VerifyAndProcess"))
	fmt.Println(sso.KindOf(err))
	// Output: security violation
}
