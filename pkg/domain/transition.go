package domain

import "sort"

// Transitions is the raw, unvalidated form of a transition table.
type Transitions map[StateName]map[Token]StateName

// TransitionTable maps (state, token) to the next state.
// Every key and target has been checked against an Alphabet and a Registry.
type TransitionTable struct {
	edges Transitions
}

// NewTransitionTable validates raw against the alphabet and registry.
//
// Sources are visited in lexical order, and tokens within a source likewise, so the
// reported error is the same on every call.
func NewTransitionTable(raw Transitions, alphabet Alphabet, registry Registry) (TransitionTable, error) {
	edges := make(Transitions, len(raw))

	sources := make([]StateName, 0, len(raw))
	for from := range raw {
		sources = append(sources, from)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	for _, from := range sources {
		if !registry.Has(from) {
			return TransitionTable{}, &StateError{State: from, Reason: ReasonTransitionSource}
		}

		row := raw[from]
		tokens := make([]Token, 0, len(row))
		for tok := range row {
			tokens = append(tokens, tok)
		}
		sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })

		copied := make(map[Token]StateName, len(row))
		for _, tok := range tokens {
			if !alphabet.Contains(tok) {
				return TransitionTable{}, &TokenError{Token: tok, Position: -1, State: from}
			}
			to := row[tok]
			if !registry.Has(to) {
				return TransitionTable{}, &StateError{State: to, Reason: ReasonTransitionTarget}
			}
			copied[tok] = to
		}
		edges[from] = copied
	}

	return TransitionTable{edges: edges}, nil
}

// Lookup returns the target of (state, token). The boolean is false when no
// transition is defined, which is not an error at this layer.
func (t TransitionTable) Lookup(state StateName, token Token) (StateName, bool) {
	row, ok := t.edges[state]
	if !ok {
		return "", false
	}
	to, ok := row[token]
	return to, ok
}

// Edges returns a copy of the table in its raw form.
func (t TransitionTable) Edges() Transitions {
	out := make(Transitions, len(t.edges))
	for from, row := range t.edges {
		copied := make(map[Token]StateName, len(row))
		for tok, to := range row {
			copied[tok] = to
		}
		out[from] = copied
	}
	return out
}
