// Package registry keeps compiled engines by name on top of a DefinitionStore.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/schema"
	"go.uber.org/atomic"
)

// ErrNameRequired is returned when registering a definition without a name.
var ErrNameRequired = errors.New("definition name is required")

// Stats reports cache activity.
type Stats struct {
	Engines  int   `json:"engines"`
	Compiles int64 `json:"compiles"`
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
}

// Registry manages the available machines.
// The store is the source of truth; compiled engines are cached.
type Registry struct {
	store ports.DefinitionStore
	opts  []automata.Option

	mu      sync.RWMutex
	engines map[string]*automata.Engine

	compiles atomic.Int64
	hits     atomic.Int64
	misses   atomic.Int64
}

// New creates a registry over store. opts are applied to every engine it compiles.
func New(store ports.DefinitionStore, opts ...automata.Option) *Registry {
	return &Registry{
		store:   store,
		opts:    opts,
		engines: make(map[string]*automata.Engine),
	}
}

func (r *Registry) compile(name string, def schema.Definition) (*automata.Engine, error) {
	opts := append(append([]automata.Option(nil), r.opts...), automata.WithName(name))
	eng, err := automata.New(def, opts...)
	if err != nil {
		return nil, err
	}
	r.compiles.Inc()
	return eng, nil
}

// Register validates def, persists it and caches the compiled engine.
// An existing machine with the same name is replaced.
func (r *Registry) Register(ctx context.Context, def schema.Definition) (*automata.Engine, error) {
	if def.Name == "" {
		return nil, ErrNameRequired
	}

	eng, err := r.compile(def.Name, def)
	if err != nil {
		return nil, err
	}

	if err := r.store.Save(ctx, def.Name, eng.Definition()); err != nil {
		return nil, fmt.Errorf("failed to save definition %q: %w", def.Name, err)
	}

	r.mu.Lock()
	r.engines[def.Name] = eng
	r.mu.Unlock()
	return eng, nil
}

// Get returns the engine for name, compiling it from the store on a cache miss.
// Returns domain.ErrDefinitionNotFound when the store has no such definition.
func (r *Registry) Get(ctx context.Context, name string) (*automata.Engine, error) {
	r.mu.RLock()
	eng, ok := r.engines[name]
	r.mu.RUnlock()
	if ok {
		r.hits.Inc()
		return eng, nil
	}
	r.misses.Inc()

	def, err := r.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	eng, err = r.compile(name, def)
	if err != nil {
		return nil, fmt.Errorf("stored definition %q is invalid: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another caller may have compiled it meanwhile.
	if cached, ok := r.engines[name]; ok {
		return cached, nil
	}
	r.engines[name] = eng
	return eng, nil
}

// Remove deletes the machine from the store and the cache.
func (r *Registry) Remove(ctx context.Context, name string) error {
	if err := r.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete definition %q: %w", name, err)
	}
	r.mu.Lock()
	delete(r.engines, name)
	r.mu.Unlock()
	return nil
}

// Names lists the machines known to the store.
func (r *Registry) Names(ctx context.Context) ([]string, error) {
	return r.store.List(ctx)
}

// Stats returns a snapshot of the cache counters.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	n := len(r.engines)
	r.mu.RUnlock()

	return Stats{
		Engines:  n,
		Compiles: r.compiles.Load(),
		Hits:     r.hits.Load(),
		Misses:   r.misses.Load(),
	}
}
