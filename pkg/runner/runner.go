package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
)

// KindInvalidInput marks inputs rejected before reaching the engine.
const KindInvalidInput domain.ErrorKind = "invalid_input"

// Summary counts the inputs a Run went through.
type Summary struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// Runner reads inputs from a handler and runs them through an engine.
type Runner struct {
	Handler      IOHandler
	Logger       *slog.Logger
	MaxInputSize int
}

// NewRunner creates a new Runner with default Stdin/Stdout text IO.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:       logging.NewNop(),
		MaxInputSize: MaxInputSize(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run processes inputs until the handler reports io.EOF or ctx is done.
// A failing input is reported through the handler and counted; it does not stop the loop.
func (r *Runner) Run(ctx context.Context, eng *automata.Engine) (Summary, error) {
	var summary Summary

	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		input, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return summary, nil
			}
			return summary, fmt.Errorf("failed to read input: %w", err)
		}

		res := r.process(ctx, eng, line, input)
		summary.Processed++
		if res.Err != nil {
			summary.Failed++
		}

		if err := r.Handler.Output(ctx, res); err != nil {
			return summary, fmt.Errorf("failed to write result: %w", err)
		}
	}
}

func (r *Runner) process(ctx context.Context, eng *automata.Engine, line int, input string) Result {
	res := Result{Line: line, Input: input}

	clean, err := SanitizeInputWithLimit(input, r.MaxInputSize)
	if err != nil {
		r.Logger.Warn("input rejected", "line", line, "error", err)
		res.Err = err
		res.Kind = KindInvalidInput
		return res
	}

	run, err := eng.Trace(ctx, clean)
	res.Run = run
	if err != nil {
		r.Logger.Debug("run failed", "line", line, "machine", eng.Name, "error", err)
		res.Err = err
		res.Kind = domain.KindOf(err)
	}
	return res
}
