// Package runtime executes validated automata.
package runtime
