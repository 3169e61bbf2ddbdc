package domain_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDescriptor(t *testing.T) {
	tests := []struct {
		name       string
		desc       domain.StateDescriptor
		allowFinal bool
		output     domain.Output
	}{
		{"Integer Output", domain.Accepting(0), true, 0},
		{"String Output", domain.Accepting("hello"), true, "hello"},
		{"Nil Output", domain.Accepting(nil), false, nil},
		{"Non Accepting", domain.NonAccepting(), false, nil},
		{"Zero Value", domain.StateDescriptor{}, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowFinal, tt.desc.AllowFinal())
			out, ok := tt.desc.Output()
			assert.Equal(t, tt.allowFinal, ok)
			assert.Equal(t, tt.output, out)
		})
	}
}

func TestRegistry(t *testing.T) {
	src := map[domain.StateName]domain.StateDescriptor{
		"S1": domain.Accepting(1),
		"S0": domain.Accepting(0),
		"X":  domain.NonAccepting(),
	}
	reg := domain.NewRegistry(src)

	// The registry keeps its own copy.
	delete(src, "S0")

	assert.Equal(t, 3, reg.Len())
	assert.True(t, reg.Has("S0"))
	assert.False(t, reg.Has("S9"))
	assert.Equal(t, []domain.StateName{"S0", "S1", "X"}, reg.Names())

	d, err := reg.Descriptor("X")
	require.NoError(t, err)
	assert.False(t, d.AllowFinal())

	_, err = reg.Descriptor("S9")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
