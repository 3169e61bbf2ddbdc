/*
Package runner drives an engine over a stream of inputs.

It reads one input per line through a pluggable IOHandler, sanitizes it, runs it
through the engine and hands the result back to the handler. Run errors are reported
per input and do not stop the loop; handler errors do.

# Key Components

  - Runner: The loop. Returns a Summary once the input is exhausted.
  - IOHandler: Decouples how inputs are read and results written.
  - TextHandler: Plain output for interactive CLI usage.
  - JSONHandler: One JSON object per line (NDJSON) for scripting.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewJSONHandler(os.Stdin, os.Stdout)),
	)

	summary, err := r.Run(ctx, engine)
*/
package runner
