package runtime

import (
	"github.com/aretw0/automata/pkg/domain"
)

// Config is the validated-at-construction description of a machine.
type Config struct {
	Alphabet    domain.Alphabet
	States      domain.Registry
	Initial     domain.StateName
	Transitions domain.Transitions
}

// Machine is an immutable deterministic finite automaton.
// Runs keep their current state locally, so a Machine may be shared by
// concurrent callers.
type Machine struct {
	alphabet domain.Alphabet
	states   domain.Registry
	initial  domain.StateName
	table    domain.TransitionTable
}

// NewMachine validates cfg and returns a ready machine.
// The initial state is checked before the transition table, so a bad initial
// state is always reported as such whatever the table contains.
func NewMachine(cfg Config) (*Machine, error) {
	if !cfg.States.Has(cfg.Initial) {
		return nil, &domain.StateError{State: cfg.Initial, Reason: domain.ReasonInitialState}
	}

	table, err := domain.NewTransitionTable(cfg.Transitions, cfg.Alphabet, cfg.States)
	if err != nil {
		return nil, err
	}

	return &Machine{
		alphabet: cfg.Alphabet,
		states:   cfg.States,
		initial:  cfg.Initial,
		table:    table,
	}, nil
}

// Initial returns the state every run starts from.
func (m *Machine) Initial() domain.StateName { return m.initial }

// Alphabet returns the machine's alphabet.
func (m *Machine) Alphabet() domain.Alphabet { return m.alphabet }

// States returns the machine's state registry.
func (m *Machine) States() domain.Registry { return m.states }

// Table returns the machine's transition table.
func (m *Machine) Table() domain.TransitionTable { return m.table }

// Step applies a single token to state and returns the next state.
func (m *Machine) Step(state domain.StateName, token domain.Token) (domain.StateName, error) {
	if !m.states.Has(state) {
		return "", &domain.StateError{State: state, Reason: domain.ReasonUnknownState}
	}
	return m.step(state, token, 0)
}

func (m *Machine) step(state domain.StateName, token domain.Token, pos int) (domain.StateName, error) {
	if !m.alphabet.Contains(token) {
		return "", &domain.TokenError{Token: token, Position: pos, State: state}
	}
	next, ok := m.table.Lookup(state, token)
	if !ok {
		return "", &domain.TransitionError{State: state, Token: token, Position: pos}
	}
	return next, nil
}

// Accept evaluates state as the end of a run and returns its output.
func (m *Machine) Accept(state domain.StateName) (domain.Output, error) {
	d, err := m.states.Descriptor(state)
	if err != nil {
		return nil, err
	}
	out, ok := d.Output()
	if !ok {
		return nil, &domain.FinalStateError{State: state}
	}
	return out, nil
}

// Trace runs input through the machine and records the visited states.
// The returned Run is never nil: on failure it describes how far the run got.
func (m *Machine) Trace(input string) (*domain.Run, error) {
	tokens := domain.Tokenize(input)
	run := &domain.Run{
		Path:  make([]domain.StateName, 1, len(tokens)+1),
		Final: m.initial,
	}
	run.Path[0] = m.initial

	current := m.initial
	for i, tok := range tokens {
		next, err := m.step(current, tok, i)
		if err != nil {
			return run, err
		}
		current = next
		run.Path = append(run.Path, current)
		run.Final = current
		run.Consumed = i + 1
	}

	out, err := m.Accept(current)
	if err != nil {
		return run, err
	}
	run.Output = out
	return run, nil
}

// Process runs input through the machine and returns the output of the final state.
func (m *Machine) Process(input string) (domain.Output, error) {
	run, err := m.Trace(input)
	if err != nil {
		return nil, err
	}
	return run.Output, nil
}
