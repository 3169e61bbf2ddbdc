package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/schema"
	"github.com/spf13/cast"
)

// Builder manages the definition construction.
type Builder struct {
	name     string
	alphabet []string
	initial  string
	order    []string
	states   map[string]*StateBuilder
}

// New creates a new definition builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[string]*StateBuilder),
	}
}

// Alphabet adds every character of s as a token.
func (b *Builder) Alphabet(s string) *Builder {
	for _, r := range s {
		b.alphabet = append(b.alphabet, string(r))
	}
	return b
}

// Tokens adds scalar values as tokens, stringifying them (0 -> "0").
func (b *Builder) Tokens(values ...any) *Builder {
	for _, v := range values {
		b.alphabet = append(b.alphabet, cast.ToString(v))
	}
	return b
}

// Initial sets the state every run starts from.
func (b *Builder) Initial(name string) *Builder {
	b.initial = name
	return b
}

// State declares a state and returns its builder.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		name:    name,
		builder: b,
		edges:   make(map[string]string),
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the builder into a validated definition.
func (b *Builder) Build() (schema.Definition, error) {
	def := schema.Definition{
		Name:        b.name,
		Alphabet:    dedupe(b.alphabet),
		Initial:     b.initial,
		States:      make(map[string]schema.StateSpec, len(b.states)),
		Transitions: make(map[string]map[string]string),
	}

	for _, name := range b.order {
		sb := b.states[name]
		def.States[name] = schema.StateSpec{Output: sb.output}
		if len(sb.edges) == 0 {
			continue
		}
		row := make(map[string]string, len(sb.edges))
		for tok, to := range sb.edges {
			row[tok] = to
		}
		def.Transitions[name] = row
	}

	if err := def.Validate(); err != nil {
		return schema.Definition{}, fmt.Errorf("invalid definition %q: %w", b.name, err)
	}
	return def, nil
}

// MustBuild is like Build but panics on error. Intended for static definitions.
func (b *Builder) MustBuild() schema.Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

func dedupe(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
