package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// Store implements ports.DefinitionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]schema.Definition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]schema.Definition),
	}
}

// Save persists a copy of the definition.
func (s *Store) Save(ctx context.Context, name string, def schema.Definition) error {
	copied := def.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load retrieves a copy of the definition so callers can't mutate the store.
func (s *Store) Load(ctx context.Context, name string) (schema.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[name]
	if !ok {
		return schema.Definition{}, domain.ErrDefinitionNotFound
	}
	return def.Clone(), nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
