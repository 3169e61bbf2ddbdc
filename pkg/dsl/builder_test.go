package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_ModThree(t *testing.T) {
	b := New("mod3").Tokens(0, 1, 1).Initial("S0")
	b.State("S0").Output(0).On(0, "S0").On(1, "S1")
	b.State("S1").Output(1).On("0", "S2").On("1", "S0")
	b.State("S2").Output(2).On("0", "S1").On("1", "S2")

	def, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "mod3", def.Name)
	assert.Equal(t, []string{"0", "1"}, def.Alphabet)
	assert.Equal(t, "S0", def.Initial)
	assert.Equal(t, 2, def.States["S2"].Output)
	assert.Equal(t, map[string]string{"0": "S0", "1": "S1"}, def.Transitions["S0"])
}

func TestBuilder_Chaining(t *testing.T) {
	def, err := New("parity").
		Alphabet("01").
		Initial("even").
		State("even").Output("even").On("0", "even").On("1", "odd").
		State("odd").On("0", "odd").On("1", "even").
		Build()
	require.NoError(t, err)

	assert.Len(t, def.States, 2)
	assert.Nil(t, def.States["odd"].Output)
	assert.Equal(t, "even", def.Transitions["odd"]["1"])
}

func TestBuilder_StateIsReused(t *testing.T) {
	b := New("x").Alphabet("a").Initial("A")
	b.State("A").On("a", "A")
	b.State("A").Output(true)

	def, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, true, def.States["A"].Output)
	assert.Equal(t, "A", def.Transitions["A"]["a"])
}

func TestBuilder_Invalid(t *testing.T) {
	_, err := New("broken").Alphabet("01").Build()
	assert.Error(t, err)

	assert.Panics(t, func() {
		New("broken").Tokens(10).Initial("A").State("A").builder.MustBuild()
	})
}
