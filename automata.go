package automata

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the automata library.
// It wraps a validated machine with logging and lifecycle hooks.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	machine *runtime.Machine
	def     schema.Definition
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithName overrides the machine name taken from the definition.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New validates def and builds an Engine.
//
// Reference errors (unknown states or tokens) are reported with the domain error
// types, so callers can use domain.KindOf on the result. Shape errors found after
// that (multi-character tokens, non-scalar outputs) are *schema.AggregateError.
func New(def schema.Definition, opts ...Option) (*Engine, error) {
	eng := &Engine{
		def:  def.Clone(),
		Name: def.Name,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("machine", eng.Name)
	}

	machine, err := runtime.NewMachine(runtime.Config{
		Alphabet:    def.AlphabetSet(),
		States:      def.Registry(),
		Initial:     domain.StateName(def.Initial),
		Transitions: def.TransitionMap(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build machine: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	eng.machine = machine
	eng.def.Name = eng.Name
	return eng, nil
}

// Process runs input through the machine and returns the output of the final state.
func (e *Engine) Process(ctx context.Context, input string) (domain.Output, error) {
	run, err := e.Trace(ctx, input)
	if err != nil {
		return nil, err
	}
	return run.Output, nil
}

// Trace runs input through the machine and returns the full run.
// On a run error the partial run is returned alongside the error.
func (e *Engine) Trace(ctx context.Context, input string) (*domain.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	e.emitStart(ctx, id, input)

	run, err := e.machine.Trace(input)
	run.ID = id

	e.emitTransitions(ctx, run, input)
	e.emitEnd(ctx, run, input, err)

	if err != nil {
		e.logger.Debug("run failed",
			"run_id", id,
			"kind", domain.KindOf(err),
			"consumed", run.Consumed,
			"error", err,
		)
		return run, err
	}

	e.logger.Debug("run completed",
		"run_id", id,
		"final_state", run.Final,
		"consumed", run.Consumed,
	)
	return run, nil
}

// Machine returns the underlying machine.
func (e *Engine) Machine() *runtime.Machine {
	return e.machine
}

// Definition returns a copy of the definition the engine was built from.
func (e *Engine) Definition() schema.Definition {
	return e.def.Clone()
}

func (e *Engine) base(t domain.EventType, runID string) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Machine:   e.Name,
		RunID:     runID,
	}
}

func (e *Engine) emitStart(ctx context.Context, runID, input string) {
	if e.hooks.OnRunStart == nil {
		return
	}
	e.hooks.OnRunStart(ctx, &domain.RunEvent{
		EventBase:   e.base(domain.EventRunStart, runID),
		InputLength: utf8.RuneCountInString(input),
	})
}

func (e *Engine) emitTransitions(ctx context.Context, run *domain.Run, input string) {
	if e.hooks.OnTransition == nil || run.Consumed == 0 {
		return
	}
	tokens := domain.Tokenize(input)
	for i := 0; i < run.Consumed; i++ {
		e.hooks.OnTransition(ctx, &domain.TransitionEvent{
			EventBase: e.base(domain.EventTransition, run.ID),
			From:      run.Path[i],
			To:        run.Path[i+1],
			Token:     tokens[i],
			Position:  i,
		})
	}
}

func (e *Engine) emitEnd(ctx context.Context, run *domain.Run, input string, err error) {
	if e.hooks.OnRunEnd == nil {
		return
	}
	e.hooks.OnRunEnd(ctx, &domain.RunEvent{
		EventBase:   e.base(domain.EventRunEnd, run.ID),
		InputLength: utf8.RuneCountInString(input),
		Final:       run.Final,
		Output:      run.Output,
		Kind:        domain.KindOf(err),
		Err:         err,
	})
}
