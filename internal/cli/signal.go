package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownError is the cancellation cause of a context stopped by a signal.
type ShutdownError struct {
	Signal os.Signal
}

func (e *ShutdownError) Error() string {
	return fmt.Sprintf("received %s", e.Signal)
}

// WithShutdownSignals returns a context cancelled on SIGINT or SIGTERM with a
// *ShutdownError cause. stop releases the signal handler.
func WithShutdownSignals(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := cancelOnSignal(parent, ch)
	return ctx, func() {
		signal.Stop(ch)
		cancel()
	}
}

func cancelOnSignal(parent context.Context, signals <-chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	go func() {
		select {
		case sig := <-signals:
			cancel(&ShutdownError{Signal: sig})
		case <-ctx.Done():
		}
	}()
	return ctx, func() { cancel(context.Canceled) }
}

// ShutdownSignal returns the signal that cancelled ctx, or nil when ctx was
// cancelled some other way or is still live.
func ShutdownSignal(ctx context.Context) os.Signal {
	var se *ShutdownError
	if errors.As(context.Cause(ctx), &se) {
		return se.Signal
	}
	return nil
}
