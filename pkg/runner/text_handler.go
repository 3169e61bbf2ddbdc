package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader *bufio.Reader
	Writer io.Writer
	// Prompt is printed before each read when set, e.g. "> " for a terminal.
	Prompt string
	// Verbose adds the visited path to each result.
	Verbose bool
	// Renderer, when set, styles error messages.
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for terminal styling without coupling the core package.
type ContentRenderer func(string) (string, error)

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithPrompt prints prompt before each read.
func WithPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// WithVerbose prints the visited path with each result.
func WithVerbose(verbose bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Verbose = verbose
	}
}

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	if h.Prompt != "" {
		fmt.Fprint(h.Writer, h.Prompt)
	}
	return readLine(h.Reader)
}

func (h *TextHandler) Output(ctx context.Context, res Result) error {
	if res.Err != nil {
		msg := fmt.Sprintf("error: %v", res.Err)
		if h.Renderer != nil {
			if rendered, err := h.Renderer(msg); err == nil {
				msg = rendered
			}
		}
		_, err := fmt.Fprintln(h.Writer, msg)
		return err
	}

	if h.Verbose && res.Run != nil {
		path := make([]string, len(res.Run.Path))
		for i, s := range res.Run.Path {
			path[i] = string(s)
		}
		_, err := fmt.Fprintf(h.Writer, "%v\t(%s)\n", res.Run.Output, strings.Join(path, " -> "))
		return err
	}

	_, err := fmt.Fprintln(h.Writer, res.Run.Output)
	return err
}

// readLine returns the next line without its terminator. A final line without
// a newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	text, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && text != "" {
			return strings.TrimRight(text, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(text, "\r\n"), nil
}
