package sso

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/tomasvotava/go-sso/sdk/id"
)

// ChallengeMethod represents a PKCE code challenge method (see rfc 7636)
type ChallengeMethod string

const (
	// S256 is the SHA-256 based challenge method and the default; it should
	// be used unless the provider only supports plain.
	S256 ChallengeMethod = "S256"

	// Plain sends the verifier itself as the challenge. Only for providers
	// that can't do S256.
	Plain ChallengeMethod = "plain"
)

// verifierLen is the length of a generated code verifier in characters.
// rfc 7636 allows 43-128; we generate the same 96 every time.
const verifierLen = 96

// verifierByteLen is the number of random bytes needed so the base64url
// encoding comes out at verifierLen characters.
const verifierByteLen = verifierLen * 3 / 4

// CodeVerifier represents a PKCE code verifier and its derived challenge for
// one login transaction. The verifier is retained until token exchange time
// and sent as code_verifier; the provider performs the actual verification.
type CodeVerifier struct {
	verifier  string
	challenge string
	method    ChallengeMethod
}

// NewCodeVerifier creates a CodeVerifier from a cryptographically secure
// random source. The challenge is derived with S256 unless overridden.
// Supported options: WithChallengeMethod
func NewCodeVerifier(opt ...Option) (*CodeVerifier, error) {
	const op = "NewCodeVerifier"
	opts := getPKCEOpts(opt...)
	data, err := id.NewWithLen("", verifierByteLen)
	if err != nil {
		return nil, NewError(ErrIDGeneratorFailed, WithOp(op), WithMsg("unable to generate code verifier"), WithWrap(err))
	}
	v := &CodeVerifier{
		verifier: data,
		method:   opts.withChallengeMethod,
	}
	if v.challenge, err = CreateCodeChallenge(v.method, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Verifier returns the verifier to be sent at token exchange time.
func (v *CodeVerifier) Verifier() string { return v.verifier }

// Challenge returns the challenge that belongs into the authorization URL.
func (v *CodeVerifier) Challenge() string { return v.challenge }

// Method returns the method the challenge was derived with.
func (v *CodeVerifier) Method() ChallengeMethod { return v.method }

// CreateCodeChallenge derives the code challenge from the verifier with the
// given method. Fails with ErrUnsupportedChallengeMethod for anything other
// than S256 and plain.
func CreateCodeChallenge(m ChallengeMethod, v *CodeVerifier) (string, error) {
	const op = "CreateCodeChallenge"
	if v == nil {
		return "", NewError(ErrNilParameter, WithOp(op), WithMsg("code verifier is nil"))
	}
	switch m {
	case S256:
		sum := sha256.Sum256([]byte(v.verifier))
		return base64.RawURLEncoding.EncodeToString(sum[:]), nil
	case Plain:
		return v.verifier, nil
	default:
		return "", NewError(ErrUnsupportedChallengeMethod, WithOp(op), WithMsg(string(m)))
	}
}

// pkceOptions is the set of available options for CodeVerifier functions
type pkceOptions struct {
	withChallengeMethod ChallengeMethod
}

// pkceDefaults is a handy way to get the defaults at runtime and during unit
// tests.
func pkceDefaults() pkceOptions {
	return pkceOptions{
		withChallengeMethod: S256,
	}
}

// getPKCEOpts gets the defaults and applies the opt overrides passed in
func getPKCEOpts(opt ...Option) pkceOptions {
	opts := pkceDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithChallengeMethod provides an optional challenge method for a
// CodeVerifier or a factory-built descriptor.
func WithChallengeMethod(m ChallengeMethod) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *pkceOptions:
			v.withChallengeMethod = m
		case *descriptorOptions:
			v.withChallengeMethod = m
		}
	}
}
