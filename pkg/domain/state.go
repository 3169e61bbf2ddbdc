package domain

import "sort"

// StateName identifies a state.
type StateName string

// Output is the value a machine yields when it stops in an accepting state.
// It is a comparable scalar (string, bool, integer or float) kept exactly as configured.
type Output = any

// StateDescriptor describes whether a state may terminate a run.
// Build it with Accepting or NonAccepting; the zero value is non-accepting.
type StateDescriptor struct {
	output    Output
	accepting bool
}

// Accepting returns a descriptor for a final state yielding out.
// A nil output has nothing to yield, so the state is non-accepting.
func Accepting(out Output) StateDescriptor {
	if out == nil {
		return NonAccepting()
	}
	return StateDescriptor{output: out, accepting: true}
}

// NonAccepting returns a descriptor for a state that cannot end a run.
func NonAccepting() StateDescriptor {
	return StateDescriptor{}
}

// AllowFinal reports whether a run may end in this state.
func (d StateDescriptor) AllowFinal() bool {
	return d.accepting
}

// Output returns the configured output and whether the state is accepting.
func (d StateDescriptor) Output() (Output, bool) {
	return d.output, d.accepting
}

// Registry holds the set of valid states.
type Registry struct {
	states map[StateName]StateDescriptor
}

// NewRegistry builds a registry from the given descriptors.
// The map is copied; later changes to it do not affect the registry.
func NewRegistry(states map[StateName]StateDescriptor) Registry {
	copied := make(map[StateName]StateDescriptor, len(states))
	for name, d := range states {
		copied[name] = d
	}
	return Registry{states: copied}
}

// Has reports whether the state exists.
func (r Registry) Has(name StateName) bool {
	_, ok := r.states[name]
	return ok
}

// Descriptor returns the descriptor of name, or a *StateError if it is unknown.
func (r Registry) Descriptor(name StateName) (StateDescriptor, error) {
	d, ok := r.states[name]
	if !ok {
		return StateDescriptor{}, &StateError{State: name, Reason: ReasonUnknownState}
	}
	return d, nil
}

// Len returns the number of states.
func (r Registry) Len() int {
	return len(r.states)
}

// Names returns the state names in lexical order.
func (r Registry) Names() []StateName {
	out := make([]StateName, 0, len(r.states))
	for name := range r.states {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
