/*
sso is a package for logging users in through third-party OAuth2/OIDC
providers without writing per-provider code.

Primary types provided by the package

* ProviderDescriptor: the immutable description of one provider - its
endpoints (static, or behind an OIDC discovery URL), default scopes, token
exchange style and a ResponseConverter that maps the provider's user info
payload to the normalized Identity. The providers package ships descriptors
for the common providers; NewProviderDescriptor builds one at runtime for
everything else.

* Engine: drives one login transaction at a time against one descriptor.
BuildLoginRedirect starts a transaction and returns the authorization URL;
VerifyAndProcess takes the provider's callback, validates the CSRF state,
exchanges the code, fetches the user info and returns the Identity.

* Identity: the normalized "OpenID" profile (subject id, email, names,
picture, provider tag).

* Token: the access/refresh/id token result of the exchange, with redacted
string and json representations.

* StateStore and CodeVerifier: the CSRF state and PKCE building blocks; the
engine wires them in, they are exported for hosts with their own flows.

The engine never decides whether a user may log in, never issues its own
sessions and never retries a provider call; it returns typed failures
(classified by Kind) and leaves policy to the host application.

The recommended usage pattern is one Engine per incoming request:

	d := providers.Google()
	e, err := sso.New(d, clientID, clientSecret, "https://example.com/callback")
	if err != nil {
		// ...
	}
	defer e.Done()
	url, err := e.BuildLoginRedirect(ctx)
	// redirect the user to url; later, in the callback handler:
	cb, err := sso.CallbackFromRequest(req)
	identity, err := e.VerifyAndProcess(ctx, cb)

A single long-lived instance works too, but only one login transaction may
be in flight on it; a second BuildLoginRedirect before the callback arrives
fails with ErrTransactionInProgress.
*/
package sso
