package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDefinition(name string) schema.Definition {
	return schema.Definition{
		Name:     name,
		Alphabet: []string{"x", "y"},
		Initial:  "S0",
		States: map[string]schema.StateSpec{
			"S0": {Output: "hello"},
			"S1": {Output: 1},
			"S2": {},
		},
		Transitions: map[string]map[string]string{
			"S0": {"x": "S0", "y": "S1"},
			"S1": {"x": "S1", "y": "S0"},
		},
	}
}

// RunDefinitionStoreContract runs a suite of tests to verify that a DefinitionStore
// implementation adheres to the defined interface contract.
func RunDefinitionStoreContract(t *testing.T, store DefinitionStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		def := contractDefinition(name)

		err := store.Save(ctx, name, def)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		// Outputs must round-trip with their types.
		assert.Equal(t, def, loaded)
	})

	t.Run("Stored Copy Is Isolated", func(t *testing.T) {
		def := contractDefinition(name)
		require.NoError(t, store.Save(ctx, name, def))

		def.Transitions["S0"]["x"] = "S1"
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "S0", loaded.Transitions["S0"]["x"])

		loaded.Alphabet[0] = "z"
		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "x", again.Alphabet[0])
	})

	t.Run("Output Types Are Preserved", func(t *testing.T) {
		typed := name + "-typed"
		def := schema.Definition{
			Name:     typed,
			Alphabet: []string{"x"},
			Initial:  "F",
			States: map[string]schema.StateSpec{
				"F": {Output: 1.0},
				"B": {Output: false},
				"E": {Output: ""},
				"I": {Output: 2},
				"R": {Output: 2.5},
			},
			Transitions: map[string]map[string]string{
				"F": {"x": "B"},
				"B": {"x": "E"},
				"E": {"x": "I"},
				"I": {"x": "R"},
				"R": {"x": "F"},
			},
		}
		require.NoError(t, store.Save(ctx, typed, def))
		defer func() { _ = store.Delete(ctx, typed) }()

		loaded, err := store.Load(ctx, typed)
		require.NoError(t, err)
		assert.Equal(t, def.States, loaded.States)
		assert.IsType(t, float64(0), loaded.States["F"].Output)
		assert.IsType(t, 0, loaded.States["I"].Output)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, name, contractDefinition(name))
		require.NoError(t, err)

		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound, "Load after Delete should return ErrDefinitionNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id2, contractDefinition(id2))
		_ = store.Save(ctx, id1, contractDefinition(id1))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsIncreasing(t, names)
	})
}
