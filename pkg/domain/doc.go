/*
Package domain contains the core types of the automata engine.

It defines the building blocks of a deterministic finite automaton (DFA): the Alphabet of
input tokens, the Registry of states and their descriptors, and the TransitionTable that
maps a (state, token) pair to the next state. The package also defines the error taxonomy
shared by every layer and the lifecycle events emitted around a run. It is kept free of
I/O and persistence concerns.

# Key Entities

  - Alphabet: the set of tokens a machine accepts as input symbols.
  - StateDescriptor: either Accepting(output) or NonAccepting.
  - Registry: the known states, keyed by StateName.
  - TransitionTable: validated (state, token) -> state mapping.
  - Run: the trace of a single execution (path, final state, output).
*/
package domain
