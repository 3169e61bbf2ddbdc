package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when a referenced state is absent from the Registry.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidToken is returned when a token is absent from the Alphabet.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNoTransition is returned when a run reaches a (state, token) pair with no entry.
	ErrNoTransition = errors.New("no transition defined")

	// ErrInvalidFinalState is returned when a run ends in a non-accepting state.
	ErrInvalidFinalState = errors.New("invalid final state")
)

// ErrDefinitionNotFound is returned when a machine definition cannot be found in a store.
var ErrDefinitionNotFound = errors.New("definition not found")

// ErrInvalidName is returned by stores for names they cannot hold.
var ErrInvalidName = errors.New("invalid definition name")

// StateReason tells which reference to a state was invalid.
type StateReason string

const (
	ReasonInitialState     StateReason = "initial state invalid"
	ReasonTransitionSource StateReason = "transition's initial state invalid"
	ReasonTransitionTarget StateReason = "transition's subsequent state invalid"
	ReasonUnknownState     StateReason = "state invalid"
)

// StateError reports a reference to a state missing from the Registry.
type StateError struct {
	State  StateName
	Reason StateReason
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.State)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// TokenError reports a token missing from the Alphabet.
// Position is the index of the token in the run input, or -1 when the token
// came from a transition table.
type TokenError struct {
	Token    Token
	Position int
	State    StateName
}

func (e *TokenError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("token %q under state %q is not in the alphabet", e.Token, e.State)
	}
	return fmt.Sprintf("token %q at position %d is not in the alphabet", e.Token, e.Position)
}

func (e *TokenError) Unwrap() error { return ErrInvalidToken }

// TransitionError reports a (state, token) pair without a transition.
type TransitionError struct {
	State    StateName
	Token    Token
	Position int
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no transition from state %q on token %q at position %d", e.State, e.Token, e.Position)
}

func (e *TransitionError) Unwrap() error { return ErrNoTransition }

// FinalStateError reports a run that ended in a non-accepting state.
type FinalStateError struct {
	State StateName
}

func (e *FinalStateError) Error() string {
	return fmt.Sprintf("final state %q is not accepting", e.State)
}

func (e *FinalStateError) Unwrap() error { return ErrInvalidFinalState }

// ErrorKind classifies engine errors so callers can branch without parsing messages.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindInvalidState      ErrorKind = "invalid_state"
	KindInvalidToken      ErrorKind = "invalid_token"
	KindNoTransition      ErrorKind = "no_transition"
	KindInvalidFinalState ErrorKind = "invalid_final_state"
	KindUnknown           ErrorKind = "unknown"
)

// KindOf returns the kind of err. Nil yields KindNone; errors outside the
// taxonomy yield KindUnknown.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrInvalidToken):
		return KindInvalidToken
	case errors.Is(err, ErrNoTransition):
		return KindNoTransition
	case errors.Is(err, ErrInvalidFinalState):
		return KindInvalidFinalState
	default:
		return KindUnknown
	}
}
