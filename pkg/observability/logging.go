package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// LoggingHooks returns hooks that log every run event to logger.
// Transitions are logged at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start",
				"machine", e.Machine,
				"run_id", e.RunID,
				"input_length", e.InputLength,
			)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "transition",
				"machine", e.Machine,
				"run_id", e.RunID,
				"from", e.From,
				"to", e.To,
				"token", e.Token,
				"position", e.Position,
			)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "run_end",
					"machine", e.Machine,
					"run_id", e.RunID,
					"kind", e.Kind,
					"error", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "run_end",
				"machine", e.Machine,
				"run_id", e.RunID,
				"final_state", e.Final,
				"output", e.Output,
			)
		},
	}
}
