package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart   EventType = "run_start"
	EventTransition EventType = "transition"
	EventRunEnd     EventType = "run_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine"`
	RunID     string    `json:"run_id"`
}

// RunEvent marks the start or the end of a run.
type RunEvent struct {
	EventBase
	InputLength int       `json:"input_length"`
	Final       StateName `json:"final_state,omitempty"`
	Output      Output    `json:"output,omitempty"`
	Kind        ErrorKind `json:"kind,omitempty"`
	Err         error     `json:"-"`
}

// TransitionEvent records one step of a run.
type TransitionEvent struct {
	EventBase
	From     StateName `json:"from"`
	To       StateName `json:"to"`
	Token    Token     `json:"token"`
	Position int       `json:"position"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any of them may be nil.
type LifecycleHooks struct {
	OnRunStart   func(context.Context, *RunEvent)
	OnTransition func(context.Context, *TransitionEvent)
	OnRunEnd     func(context.Context, *RunEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:   chainRun(h.OnRunStart, other.OnRunStart),
		OnTransition: chainTransition(h.OnTransition, other.OnTransition),
		OnRunEnd:     chainRun(h.OnRunEnd, other.OnRunEnd),
	}
}

func chainRun(a, b func(context.Context, *RunEvent)) func(context.Context, *RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *RunEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainTransition(a, b func(context.Context, *TransitionEvent)) func(context.Context, *TransitionEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *TransitionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
