/*
Package automata builds and runs deterministic finite automata (DFA) from a declarative
description.

A machine is described by an alphabet of single-character tokens, a set of states (each
either accepting with an output value, or non-accepting), an initial state and a
transition table. All cross references are validated once, when the Engine is built; a
run then reads its input one character at a time and yields the output of the state it
stops in.

# Key Features

  - Typed errors: every failure unwraps to one of domain.ErrInvalidState,
    domain.ErrInvalidToken, domain.ErrNoTransition or domain.ErrInvalidFinalState.
  - Pure runs: an Engine holds no per-run state and is safe for concurrent use.
  - Declarative definitions in YAML, JSON or TOML (package schema) or Go (package dsl).
  - Adapters for HTTP, MCP and persistent definition stores.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/automata"
		"github.com/aretw0/automata/pkg/schema"
	)

	func main() {
		def, err := schema.Load("mod3.yaml")
		if err != nil {
			log.Fatal(err)
		}

		eng, err := automata.New(def)
		if err != nil {
			log.Fatal(err)
		}

		out, err := eng.Process(context.Background(), "110")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out) // 0
	}
*/
package automata
