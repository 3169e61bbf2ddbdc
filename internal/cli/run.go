package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/muesli/termenv"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	File         string
	JSON         bool
	Verbose      bool
	Debug        bool
	Interactive  bool
	MaxInputSize int
	Inputs       []string
	Stdin        io.Reader
	Stdout       io.Writer
	Logger       *slog.Logger
}

// RunSession runs every input through the selected machine.
// Inputs come from opts.Inputs when given, otherwise one per line from opts.Stdin.
// It returns an error when any input failed, after all of them were processed.
func RunSession(ctx context.Context, opts RunOptions) (runner.Summary, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	def, err := LoadDefinition(opts.File)
	if err != nil {
		return runner.Summary{}, err
	}

	engOpts := []automata.Option{automata.WithLogger(opts.Logger)}
	if opts.Debug {
		engOpts = append(engOpts, automata.WithLifecycleHooks(observability.LoggingHooks(opts.Logger)))
	}
	eng, err := automata.New(def, engOpts...)
	if err != nil {
		return runner.Summary{}, fmt.Errorf("error initializing machine: %w", err)
	}

	source := opts.Stdin
	if len(opts.Inputs) > 0 {
		source = strings.NewReader(strings.Join(opts.Inputs, "\n") + "\n")
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(source, opts.Stdout)
	} else {
		textOpts := []runner.TextHandlerOption{runner.WithVerbose(opts.Verbose)}
		if opts.Interactive && len(opts.Inputs) == 0 {
			tui.Banner(opts.Stdout, termenv.ColorProfile())
			textOpts = append(textOpts,
				runner.WithPrompt("> "),
				runner.WithTextHandlerRenderer(styleError),
			)
		}
		handler = runner.NewTextHandler(source, opts.Stdout, textOpts...)
	}

	r := runner.NewRunner(
		runner.WithInputHandler(handler),
		runner.WithLogger(opts.Logger),
		runner.WithMaxInputSize(opts.MaxInputSize),
	)

	summary, err := r.Run(ctx, eng)
	if err != nil {
		return summary, err
	}
	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d of %d inputs failed", summary.Failed, summary.Processed)
	}
	return summary, nil
}

func styleError(msg string) (string, error) {
	p := termenv.ColorProfile()
	return termenv.String(msg).Foreground(p.Color("#f87171")).String(), nil
}
