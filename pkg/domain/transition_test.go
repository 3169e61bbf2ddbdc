package domain_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modThreeParts() (domain.Alphabet, domain.Registry, domain.Transitions) {
	alphabet := domain.AlphabetOf("01")
	registry := domain.NewRegistry(map[domain.StateName]domain.StateDescriptor{
		"S0": domain.Accepting(0),
		"S1": domain.Accepting(1),
		"S2": domain.Accepting(2),
	})
	raw := domain.Transitions{
		"S0": {"0": "S0", "1": "S1"},
		"S1": {"0": "S2", "1": "S0"},
		"S2": {"0": "S1", "1": "S2"},
	}
	return alphabet, registry, raw
}

func TestNewTransitionTable_Valid(t *testing.T) {
	alphabet, registry, raw := modThreeParts()

	table, err := domain.NewTransitionTable(raw, alphabet, registry)
	require.NoError(t, err)

	to, ok := table.Lookup("S1", "0")
	assert.True(t, ok)
	assert.Equal(t, domain.StateName("S2"), to)

	_, ok = table.Lookup("S1", "x")
	assert.False(t, ok)
	_, ok = table.Lookup("S9", "0")
	assert.False(t, ok)

	// Edges is a copy.
	edges := table.Edges()
	edges["S0"]["0"] = "S2"
	to, _ = table.Lookup("S0", "0")
	assert.Equal(t, domain.StateName("S0"), to)
}

func TestNewTransitionTable_Partial(t *testing.T) {
	alphabet, registry, _ := modThreeParts()
	table, err := domain.NewTransitionTable(domain.Transitions{"S0": {"1": "S1"}}, alphabet, registry)
	require.NoError(t, err)

	_, ok := table.Lookup("S0", "0")
	assert.False(t, ok)
}

func TestNewTransitionTable_Invalid(t *testing.T) {
	alphabet, registry, _ := modThreeParts()

	tests := []struct {
		name   string
		raw    domain.Transitions
		target error
		reason domain.StateReason
	}{
		{
			name:   "Unknown Source State",
			raw:    domain.Transitions{"S0": {"0": "S0"}, "S5": {"0": "S2"}},
			target: domain.ErrInvalidState,
			reason: domain.ReasonTransitionSource,
		},
		{
			name:   "Unknown Token",
			raw:    domain.Transitions{"S0": {"0": "S0", "x": "S1"}},
			target: domain.ErrInvalidToken,
		},
		{
			name:   "Unknown Target State",
			raw:    domain.Transitions{"S0": {"0": "S0", "1": "S8"}},
			target: domain.ErrInvalidState,
			reason: domain.ReasonTransitionTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewTransitionTable(tt.raw, alphabet, registry)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			if tt.reason != "" {
				var stateErr *domain.StateError
				require.ErrorAs(t, err, &stateErr)
				assert.Equal(t, tt.reason, stateErr.Reason)
			}
		})
	}
}

func TestNewTransitionTable_DeterministicError(t *testing.T) {
	alphabet, registry, _ := modThreeParts()
	raw := domain.Transitions{"S7": {"0": "S0"}, "S5": {"0": "S0"}, "S6": {"0": "S0"}}

	for i := 0; i < 20; i++ {
		_, err := domain.NewTransitionTable(raw, alphabet, registry)
		var stateErr *domain.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, domain.StateName("S5"), stateErr.State)
	}
}
