package sso

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// AccessToken is an oauth access_token
type AccessToken string

// RedactedAccessToken is the redacted string or json for an oauth access_token
const RedactedAccessToken = "[REDACTED: access_token]"

// String will redact the token
func (t AccessToken) String() string {
	return RedactedAccessToken
}

// MarshalJSON will redact the token
func (t AccessToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedAccessToken)
}

// RefreshToken is an oauth refresh_token
type RefreshToken string

// RedactedRefreshToken is the redacted string or json for an oauth refresh_token
const RedactedRefreshToken = "[REDACTED: refresh_token]"

// String will redact the token
func (t RefreshToken) String() string {
	return RedactedRefreshToken
}

// MarshalJSON will redact the token
func (t RefreshToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedRefreshToken)
}

// IDToken is an oidc id_token
type IDToken string

// RedactedIDToken is the redacted string or json for an oidc id_token
const RedactedIDToken = "[REDACTED: id_token]"

// String will redact the token
func (t IDToken) String() string {
	return RedactedIDToken
}

// MarshalJSON will redact the token
func (t IDToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedIDToken)
}

// Claims decodes the id_token's payload claims. The signature is not
// verified; the claims travelled over the provider's TLS channel and are only
// used as a profile source for providers that don't expose a usable user info
// endpoint.
func (t IDToken) Claims() (map[string]interface{}, error) {
	const op = "IDToken.Claims"
	if t == "" {
		return nil, NewError(ErrInvalidParameter, WithOp(op), WithMsg("id_token is empty"))
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(string(t), claims); err != nil {
		return nil, NewError(ErrInvalidParameter, WithOp(op), WithMsg("unable to parse id_token claims"), WithWrap(err))
	}
	return claims, nil
}

// DefaultTokenExpirySkew defines a default time skew when checking a Token's
// expiration.
const DefaultTokenExpirySkew = 10 * time.Second

// Token is the result of a successful code exchange. The engine exposes it
// read-only after verification; it is never persisted.
type Token struct {
	// Access is the token used against the provider's APIs (including the
	// user info endpoint).
	Access AccessToken

	// Refresh is only set when the provider returns one.
	Refresh RefreshToken

	// ID is the oidc id_token, when the provider returns one.
	ID IDToken

	// Type is the token type hint ("Bearer" for every supported provider).
	Type string

	// Expiry is the access token's expiry hint; zero when the provider gave
	// none.
	Expiry time.Time
}

// NewToken creates a Token from a successful oauth2 exchange result.
func NewToken(t *oauth2.Token) (*Token, error) {
	const op = "NewToken"
	if t == nil {
		return nil, NewError(ErrNilParameter, WithOp(op), WithMsg("oauth2 token is nil"))
	}
	if t.AccessToken == "" {
		return nil, NewError(ErrInvalidParameter, WithOp(op), WithMsg("access_token is empty"))
	}
	tk := &Token{
		Access:  AccessToken(t.AccessToken),
		Refresh: RefreshToken(t.RefreshToken),
		Type:    t.TokenType,
		Expiry:  t.Expiry,
	}
	if raw, ok := t.Extra("id_token").(string); ok {
		tk.ID = IDToken(raw)
	}
	return tk, nil
}

// Expired returns true when the token's expiry hint (if any) has passed,
// allowing for DefaultTokenExpirySkew.
func (t *Token) Expired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return t.Expiry.Round(0).Before(time.Now().Add(DefaultTokenExpirySkew))
}

// Valid returns true when the token has an access token that hasn't expired.
func (t *Token) Valid() bool {
	if t == nil {
		return false
	}
	if t.Access == "" {
		return false
	}
	return !t.Expired()
}
