// Package schema defines the declarative description of an automaton.
//
// A Definition is the single configuration structure callers build, either in code
// (see package dsl) or by parsing a YAML, JSON or TOML document. Parsing normalizes the
// loosely-typed input before it reaches the engine:
//
//   - an alphabet written as a string becomes one token per character;
//   - scalar alphabet entries and transition keys are stringified ([0, 1] -> ["0", "1"]);
//   - integral outputs become int and fractional outputs float64, whatever the format.
//
// Basic usage:
//
//	def, err := schema.Load("machines/mod3.yaml")
//	if err != nil {
//	    // Handle parse or validation errors
//	}
//
// A document looks like:
//
//	name: mod3
//	alphabet: "01"
//	initial: S0
//	states:
//	  S0: {output: 0}
//	  S1: {output: 1}
//	  S2: {output: 2}
//	transitions:
//	  S0: {"0": S0, "1": S1}
//	  S1: {"0": S2, "1": S0}
//	  S2: {"0": S1, "1": S2}
package schema
