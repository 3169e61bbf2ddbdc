package registry_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/modthree"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(memory.NewStore())

	_, err := reg.Register(ctx, modthree.Definition())
	require.NoError(t, err)

	eng, err := reg.Get(ctx, modthree.Name)
	require.NoError(t, err)

	out, err := eng.Process(ctx, "110")
	require.NoError(t, err)
	assert.Equal(t, 0, out)

	stats := reg.Stats()
	assert.Equal(t, 1, stats.Engines)
	assert.Equal(t, int64(1), stats.Compiles)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)
}

func TestRegistry_LoadsFromStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, "m3", modthree.Definition()))

	reg := registry.New(store)
	eng, err := reg.Get(ctx, "m3")
	require.NoError(t, err)
	assert.Equal(t, "m3", eng.Name)

	_, err = reg.Get(ctx, "m3")
	require.NoError(t, err)

	stats := reg.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Compiles)
}

func TestRegistry_NotFound(t *testing.T) {
	reg := registry.New(memory.NewStore())

	_, err := reg.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	reg := registry.New(store)

	def := modthree.Definition()
	def.Initial = "S9"
	_, err := reg.Register(ctx, def)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	names, err := reg.Names(ctx)
	require.NoError(t, err)
	assert.Empty(t, names, "invalid definitions must not be persisted")

	def = modthree.Definition()
	def.Name = ""
	_, err = reg.Register(ctx, def)
	assert.ErrorIs(t, err, registry.ErrNameRequired)
}

func TestRegistry_ReplaceAndRemove(t *testing.T) {
	ctx := context.Background()
	reg := registry.New(memory.NewStore())

	_, err := reg.Register(ctx, modthree.Definition())
	require.NoError(t, err)

	b := dsl.New(modthree.Name).Alphabet("a").Initial("A")
	b.State("A").Output("yes").On("a", "A")
	_, err = reg.Register(ctx, b.MustBuild())
	require.NoError(t, err)

	eng, err := reg.Get(ctx, modthree.Name)
	require.NoError(t, err)
	out, err := eng.Process(ctx, "aaa")
	require.NoError(t, err)
	assert.Equal(t, "yes", out)

	require.NoError(t, reg.Remove(ctx, modthree.Name))
	_, err = reg.Get(ctx, modthree.Name)
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	assert.Equal(t, 0, reg.Stats().Engines)
}

func TestRegistry_ConcurrentGet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, modthree.Name, modthree.Definition()))
	reg := registry.New(store)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			eng, err := reg.Get(ctx, modthree.Name)
			if assert.NoError(t, err) {
				out, err := eng.Process(ctx, "1111")
				assert.NoError(t, err)
				assert.Equal(t, 0, out)
			}
		}()
	}
	wg.Wait()

	stats := reg.Stats()
	assert.Equal(t, 1, stats.Engines)
	assert.Equal(t, int64(32), stats.Hits+stats.Misses)
}
