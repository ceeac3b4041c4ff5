package sso

import (
	"errors"
	"strings"
)

var (
	ErrInvalidParameter           = errors.New("invalid parameter")
	ErrNilParameter               = errors.New("nil parameter")
	ErrInvalidCACert              = errors.New("invalid CA certificate")
	ErrIDGeneratorFailed          = errors.New("id generation failed")
	ErrUnsupportedChallengeMethod = errors.New("unsupported challenge method")
	ErrInsecureTransport          = errors.New("endpoint scheme is not https")
	ErrDiscovery                  = errors.New("discovery document is unavailable or incomplete")
	ErrTransactionInProgress      = errors.New("login transaction already in progress")
	ErrMissingCode                = errors.New("authorization code is missing from the callback")
	ErrStateMismatch              = errors.New("state does not match the current login transaction")
	ErrTokenExchange              = errors.New("token exchange failed")
	ErrUserInfoFetch              = errors.New("user info request failed")
	ErrIncompleteProfile          = errors.New("user info response is missing required fields")
)

// Kind classifies an error for callers that need to decide between retrying,
// fixing their integration, or raising an alarm.
type Kind int

const (
	ErrKindUnknown Kind = iota

	// ErrParameterViolation: the caller passed an invalid or missing
	// parameter.
	ErrParameterViolation

	// ErrIntegrationViolation: the engine or provider is misconfigured
	// (unreachable discovery document, non-https endpoints, a transaction
	// already in flight, etc).
	ErrIntegrationViolation

	// ErrProviderViolation: the user or the provider misbehaved during the
	// flow (missing code, failed exchange, incomplete profile).
	ErrProviderViolation

	// ErrSecurityViolation: the callback failed a security check (state
	// mismatch). Never downgrade these to a generic failure.
	ErrSecurityViolation

	// ErrInternal: the engine itself failed (random source exhaustion).
	ErrInternal
)

func (k Kind) String() string {
	switch k {
	case ErrParameterViolation:
		return "parameter violation"
	case ErrIntegrationViolation:
		return "integration violation"
	case ErrProviderViolation:
		return "provider violation"
	case ErrSecurityViolation:
		return "security violation"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// defaultKinds classifies each of the package's sentinel errors.
var defaultKinds = map[error]Kind{
	ErrInvalidParameter:           ErrParameterViolation,
	ErrNilParameter:               ErrParameterViolation,
	ErrInvalidCACert:              ErrIntegrationViolation,
	ErrUnsupportedChallengeMethod: ErrIntegrationViolation,
	ErrInsecureTransport:          ErrIntegrationViolation,
	ErrDiscovery:                  ErrIntegrationViolation,
	ErrTransactionInProgress:      ErrIntegrationViolation,
	ErrMissingCode:                ErrProviderViolation,
	ErrTokenExchange:              ErrProviderViolation,
	ErrUserInfoFetch:              ErrProviderViolation,
	ErrIncompleteProfile:          ErrProviderViolation,
	ErrStateMismatch:              ErrSecurityViolation,
	ErrIDGeneratorFailed:          ErrInternal,
}

// Err embodies one of the package's sentinel errors along with the operation
// that raised it, a classification Kind and an optionally wrapped underlying
// error. Matching with errors.Is works against both the sentinel and the
// wrapped error.
type Err struct {
	// Op is the operation that raised the error ("Engine.VerifyAndProcess")
	Op string

	// Kind classifies the error; defaults to the sentinel's classification.
	Kind Kind

	// Msg is an optional human readable message
	Msg string

	// Code is the sentinel this error embodies
	Code error

	// Wrapped is an optional underlying error
	Wrapped error
}

// NewError creates a new Err for the given sentinel.
// Supported options: WithOp, WithKind, WithMsg, WithWrap.
func NewError(code error, opt ...Option) error {
	opts := getErrOpts(opt...)
	kind := opts.withKind
	if kind == ErrKindUnknown && code != nil {
		kind = defaultKinds[code]
	}
	return &Err{
		Op:      opts.withOp,
		Kind:    kind,
		Msg:     opts.withErrMsg,
		Code:    code,
		Wrapped: opts.withErrWrapped,
	}
}

// Error implements the error interface.
func (e *Err) Error() string {
	parts := make([]string, 0, 4)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Code != nil {
		parts = append(parts, e.Code.Error())
	}
	if e.Wrapped != nil {
		parts = append(parts, e.Wrapped.Error())
	}
	if len(parts) == 0 {
		return "unknown error"
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes both the sentinel and the wrapped error for errors.Is and
// errors.As.
func (e *Err) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := make([]error, 0, 2)
	if e.Code != nil {
		errs = append(errs, e.Code)
	}
	if e.Wrapped != nil {
		errs = append(errs, e.Wrapped)
	}
	return errs
}

// KindOf reports the classification of an error returned by this package.
func KindOf(err error) Kind {
	var e *Err
	if errors.As(err, &e) {
		return e.Kind
	}
	for code, kind := range defaultKinds {
		if errors.Is(err, code) {
			return kind
		}
	}
	return ErrKindUnknown
}

// errOptions is the set of available options for Err functions
type errOptions struct {
	withOp         string
	withKind       Kind
	withErrMsg     string
	withErrWrapped error
}

// errDefaults is a handy way to get the defaults at runtime and during unit
// tests.
func errDefaults() errOptions {
	return errOptions{}
}

// getErrOpts gets the defaults and applies the opt overrides passed in
func getErrOpts(opt ...Option) errOptions {
	opts := errDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithOp provides an optional operation name for an Err
func WithOp(op string) Option {
	return func(o interface{}) {
		if o, ok := o.(*errOptions); ok {
			o.withOp = op
		}
	}
}

// WithKind provides an optional classification override for an Err
func WithKind(k Kind) Option {
	return func(o interface{}) {
		if o, ok := o.(*errOptions); ok {
			o.withKind = k
		}
	}
}

// WithMsg provides an optional message for an Err
func WithMsg(msg string) Option {
	return func(o interface{}) {
		if o, ok := o.(*errOptions); ok {
			o.withErrMsg = msg
		}
	}
}

// WithWrap provides an optional error to wrap within an Err
func WithWrap(err error) Option {
	return func(o interface{}) {
		if o, ok := o.(*errOptions); ok {
			o.withErrWrapped = err
		}
	}
}
