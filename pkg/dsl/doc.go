/*
Package dsl provides a fluent builder for automaton definitions.

It lets callers describe a machine in Go instead of a YAML, JSON or TOML document. The
result is a schema.Definition, ready to be passed to automata.New.

Example usage:

	def, err := dsl.New("parity").
		Alphabet("01").
		Initial("even").
		State("even").Output("even").On("0", "even").On("1", "odd").
		State("odd").Output("odd").On("0", "odd").On("1", "even").
		Build()
*/
package dsl
