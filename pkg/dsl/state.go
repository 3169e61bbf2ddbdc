package dsl

import (
	"github.com/aretw0/automata/pkg/schema"
	"github.com/spf13/cast"
)

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name    string
	output  any
	edges   map[string]string
	builder *Builder
}

// Output marks the state as accepting with the given output.
func (s *StateBuilder) Output(v any) *StateBuilder {
	s.output = v
	return s
}

// On adds a transition from this state to target when token is read.
// Scalar tokens are stringified.
func (s *StateBuilder) On(token any, target string) *StateBuilder {
	s.edges[cast.ToString(token)] = target
	return s
}

// State switches to another state of the same builder.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Build builds the parent definition.
func (s *StateBuilder) Build() (schema.Definition, error) {
	return s.builder.Build()
}

// MustBuild is like Build but panics on error.
func (s *StateBuilder) MustBuild() schema.Definition {
	return s.builder.MustBuild()
}
