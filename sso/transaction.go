package sso

import (
	"time"

	"github.com/google/uuid"
)

type transactionStatus int

// One transaction moves redirectBuilt -> verified or redirectBuilt ->
// failed; both are terminal. A fresh BuildLoginRedirect always starts a new
// transaction, never resurrects a failed one.
const (
	txRedirectBuilt transactionStatus = iota
	txVerified
	txFailed
)

// loginTransaction is the ephemeral state of one login attempt: the CSRF
// state value, the optional PKCE verifier, and what was requested. It is
// owned exclusively by one engine between the login redirect and the
// callback, and is discarded once verification completes either way.
type loginTransaction struct {
	// id correlates the transaction's log records; it never goes on the
	// wire.
	id string

	state       string
	verifier    *CodeVerifier
	redirectURI string
	scopes      []string
	createdAt   time.Time
	status      transactionStatus
}

func newLoginTransaction(state string, verifier *CodeVerifier, redirectURI string, scopes []string) *loginTransaction {
	return &loginTransaction{
		id:          uuid.NewString(),
		state:       state,
		verifier:    verifier,
		redirectURI: redirectURI,
		scopes:      scopes,
		createdAt:   time.Now(),
		status:      txRedirectBuilt,
	}
}
