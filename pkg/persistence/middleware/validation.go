package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/schema"
)

type validationMiddleware struct {
	next ports.DefinitionStore
}

// NewValidationMiddleware creates a middleware that refuses to persist malformed
// definitions and reports malformed ones found in the underlying store.
// Failures wrap *schema.AggregateError.
func NewValidationMiddleware() Middleware {
	return func(next ports.DefinitionStore) ports.DefinitionStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, name string, def schema.Definition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("refusing to store definition %q: %w", name, err)
	}
	return m.next.Save(ctx, name, def)
}

func (m *validationMiddleware) Load(ctx context.Context, name string) (schema.Definition, error) {
	def, err := m.next.Load(ctx, name)
	if err != nil {
		return schema.Definition{}, err
	}
	if err := def.Validate(); err != nil {
		return schema.Definition{}, fmt.Errorf("stored definition %q is malformed: %w", name, err)
	}
	return def, nil
}

func (m *validationMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
