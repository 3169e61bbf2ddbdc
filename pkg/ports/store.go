package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/schema"
)

// DefinitionStore defines the interface for persisting machine definitions.
type DefinitionStore interface {
	// Save persists the definition under name, replacing any previous one.
	Save(ctx context.Context, name string, def schema.Definition) error

	// Load retrieves the definition stored under name.
	// Returns domain.ErrDefinitionNotFound if there is none.
	Load(ctx context.Context, name string) (schema.Definition, error)

	// Delete removes the definition. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in lexical order.
	List(ctx context.Context) ([]string, error)
}
