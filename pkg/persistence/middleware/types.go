package middleware

import "github.com/aretw0/automata/pkg/ports"

// Middleware allows wrapping a DefinitionStore to add behavior.
type Middleware func(ports.DefinitionStore) ports.DefinitionStore

// Chain wraps store with mws. The first middleware is the outermost one.
func Chain(store ports.DefinitionStore, mws ...Middleware) ports.DefinitionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
