package runner

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Result is the outcome of one input.
type Result struct {
	Line  int
	Input string
	Run   *domain.Run
	Err   error
	Kind  domain.ErrorKind
}

// IOHandler defines the strategy for reading inputs and presenting results.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next input. Returns io.EOF when there are no more.
	Input(ctx context.Context) (string, error)

	// Output presents the result of one input.
	Output(ctx context.Context, res Result) error
}
