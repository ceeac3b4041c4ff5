package sso

import (
	"crypto/subtle"
	"sync"

	"github.com/tomasvotava/go-sso/sdk/id"
)

// StatePrefix is the prefix of every state value minted by a StateStore.
const StatePrefix = "st"

// StateStore issues the CSRF state value for a login transaction and
// validates the value echoed back by the provider at callback time. Every
// entry is one-shot: validation consumes it, success or failure, so a state
// value can never be replayed.
//
// A StateStore holds at most one entry, mirroring the engine's
// one-transaction-at-a-time model.
type StateStore struct {
	mu      sync.Mutex
	current string
}

// Issue records and returns the state value for a new login transaction.
// When callerState is empty a new cryptographically random value (16 bytes of
// entropy) is minted. A caller-supplied value is accepted verbatim; it is
// only safe as an opaque correlation value, never as a data channel -
// anything readable in the state can be injected by an attacker before the
// engine ever sees it.
func (s *StateStore) Issue(callerState string) (string, error) {
	const op = "StateStore.Issue"
	state := callerState
	if state == "" {
		var err error
		if state, err = id.New(StatePrefix); err != nil {
			return "", NewError(ErrIDGeneratorFailed, WithOp(op), WithMsg("unable to generate state"), WithWrap(err))
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = state
	return state, nil
}

// Validate checks the state returned by the provider against the recorded
// entry. It fails closed: no recorded entry, an absent returned value, or
// any difference between the two is ErrStateMismatch. The recorded entry is
// consumed either way, so neither a replay after success nor a retry after
// failure can pass.
func (s *StateStore) Validate(returnedState string) error {
	const op = "StateStore.Validate"
	s.mu.Lock()
	recorded := s.current
	s.current = ""
	s.mu.Unlock()

	switch {
	case recorded == "":
		return NewError(ErrStateMismatch, WithOp(op), WithMsg("no login transaction is awaiting a callback"))
	case returnedState == "":
		return NewError(ErrStateMismatch, WithOp(op), WithMsg("callback did not return a state"))
	case subtle.ConstantTimeCompare([]byte(recorded), []byte(returnedState)) != 1:
		return NewError(ErrStateMismatch, WithOp(op))
	}
	return nil
}

// reset drops the recorded entry without validating it, for transactions that
// end before their callback state is ever compared.
func (s *StateStore) reset() {
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()
}
