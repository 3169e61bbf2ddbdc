// Package modthree provides the machine that computes the remainder of a binary
// number divided by three.
package modthree

import (
	"context"
	"fmt"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/schema"
)

// Name is the name the machine is registered under.
const Name = "modthree"

// Definition returns the mod-three machine.
//
// The state is the remainder of the bits read so far; reading bit b from
// remainder r moves to (2r + b) mod 3.
func Definition() schema.Definition {
	b := dsl.New(Name).Tokens(0, 1).Initial("S0")
	b.State("S0").Output(0).On(0, "S0").On(1, "S1")
	b.State("S1").Output(1).On(0, "S2").On(1, "S0")
	b.State("S2").Output(2).On(0, "S1").On(1, "S2")
	return b.MustBuild()
}

// New builds an engine running the mod-three machine.
func New(opts ...automata.Option) (*automata.Engine, error) {
	return automata.New(Definition(), opts...)
}

// Compute returns the value of the binary string input modulo three.
func Compute(ctx context.Context, eng *automata.Engine, input string) (int, error) {
	out, err := eng.Process(ctx, input)
	if err != nil {
		return 0, err
	}
	n, ok := out.(int)
	if !ok {
		return 0, fmt.Errorf("unexpected output type %T", out)
	}
	return n, nil
}
