package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want domain.ErrorKind
	}{
		{nil, domain.KindNone},
		{&domain.StateError{State: "S9", Reason: domain.ReasonInitialState}, domain.KindInvalidState},
		{&domain.TokenError{Token: "x", Position: 0}, domain.KindInvalidToken},
		{&domain.TransitionError{State: "S0", Token: "1"}, domain.KindNoTransition},
		{&domain.FinalStateError{State: "S1"}, domain.KindInvalidFinalState},
		{fmt.Errorf("wrapped: %w", &domain.FinalStateError{State: "S1"}), domain.KindInvalidFinalState},
		{errors.New("boom"), domain.KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.KindOf(tt.err), "%v", tt.err)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `initial state invalid: "S5"`,
		(&domain.StateError{State: "S5", Reason: domain.ReasonInitialState}).Error())
	assert.Equal(t, `token "x" at position 0 is not in the alphabet`,
		(&domain.TokenError{Token: "x", Position: 0}).Error())
	assert.Equal(t, `token "x" under state "S0" is not in the alphabet`,
		(&domain.TokenError{Token: "x", Position: -1, State: "S0"}).Error())
}
