package schema

import (
	"github.com/aretw0/automata/pkg/domain"
)

// Definition is the declarative description of a machine.
type Definition struct {
	Name        string                       `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" mapstructure:"name"`
	Alphabet    []string                     `json:"alphabet" yaml:"alphabet" toml:"alphabet" mapstructure:"alphabet"`
	States      map[string]StateSpec         `json:"states" yaml:"states" toml:"states" mapstructure:"states"`
	Initial     string                       `json:"initial" yaml:"initial" toml:"initial" mapstructure:"initial"`
	Transitions map[string]map[string]string `json:"transitions" yaml:"transitions" toml:"transitions" mapstructure:"transitions"`
}

// StateSpec describes one state. A state with an Output is accepting.
type StateSpec struct {
	Output any `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty" mapstructure:"output"`
}

// AlphabetSet returns the alphabet as a domain set.
func (d Definition) AlphabetSet() domain.Alphabet {
	tokens := make([]domain.Token, len(d.Alphabet))
	for i, t := range d.Alphabet {
		tokens[i] = domain.Token(t)
	}
	return domain.NewAlphabet(tokens...)
}

// Registry returns the states as a domain registry.
func (d Definition) Registry() domain.Registry {
	states := make(map[domain.StateName]domain.StateDescriptor, len(d.States))
	for name, spec := range d.States {
		states[domain.StateName(name)] = domain.Accepting(spec.Output)
	}
	return domain.NewRegistry(states)
}

// TransitionMap returns the transitions in domain form.
func (d Definition) TransitionMap() domain.Transitions {
	out := make(domain.Transitions, len(d.Transitions))
	for from, row := range d.Transitions {
		converted := make(map[domain.Token]domain.StateName, len(row))
		for tok, to := range row {
			converted[domain.Token(tok)] = domain.StateName(to)
		}
		out[domain.StateName(from)] = converted
	}
	return out
}

// Clone returns a deep copy of d.
func (d Definition) Clone() Definition {
	out := Definition{
		Name:    d.Name,
		Initial: d.Initial,
	}
	if d.Alphabet != nil {
		out.Alphabet = append([]string(nil), d.Alphabet...)
	}
	if d.States != nil {
		out.States = make(map[string]StateSpec, len(d.States))
		for k, v := range d.States {
			out.States[k] = v
		}
	}
	if d.Transitions != nil {
		out.Transitions = make(map[string]map[string]string, len(d.Transitions))
		for from, row := range d.Transitions {
			copied := make(map[string]string, len(row))
			for tok, to := range row {
				copied[tok] = to
			}
			out.Transitions[from] = copied
		}
	}
	return out
}
