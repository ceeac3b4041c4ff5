package sso

import (
	"net/http"
	"net/url"
)

// Callback abstracts the provider's redirect back into the host application.
// The engine only reads the code, state and error query parameters from it;
// any value exposing the callback's query parameters and the originally
// requested URL will do, so hosts aren't tied to net/http handlers.
type Callback interface {
	// QueryParams returns the callback's query parameters.
	QueryParams() url.Values

	// RequestURL returns the originally requested URL.
	RequestURL() string
}

type urlCallback struct {
	url    *url.URL
	values url.Values
}

func (c *urlCallback) QueryParams() url.Values { return c.values }
func (c *urlCallback) RequestURL() string      { return c.url.String() }

// CallbackFromRequest adapts an incoming *http.Request into a Callback.
func CallbackFromRequest(r *http.Request) (Callback, error) {
	const op = "CallbackFromRequest"
	if r == nil || r.URL == nil {
		return nil, NewError(ErrNilParameter, WithOp(op), WithMsg("request is nil"))
	}
	return &urlCallback{url: r.URL, values: r.URL.Query()}, nil
}

// CallbackFromURL adapts a raw callback URL into a Callback.
func CallbackFromURL(rawURL string) (Callback, error) {
	const op = "CallbackFromURL"
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, NewError(ErrInvalidParameter, WithOp(op), WithMsg("unable to parse callback URL"), WithWrap(err))
	}
	return &urlCallback{url: u, values: u.Query()}, nil
}
