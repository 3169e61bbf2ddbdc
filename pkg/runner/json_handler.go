package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// JSONResult is the wire form of a Result.
type JSONResult struct {
	Line       int                `json:"line"`
	Input      string             `json:"input"`
	Output     domain.Output      `json:"output,omitempty"`
	FinalState domain.StateName   `json:"final_state,omitempty"`
	Path       []domain.StateName `json:"path,omitempty"`
	RunID      string             `json:"run_id,omitempty"`
	Error      string             `json:"error,omitempty"`
	Kind       domain.ErrorKind   `json:"kind,omitempty"`
}

// JSONHandler implements the IOHandler interface for JSON-Lines communication.
// Each input line is either a JSON string, an object with an "input" field,
// or raw text.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	text, err := readLine(h.Reader)
	if err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		var req struct {
			Input *string `json:"input"`
		}
		if err := json.Unmarshal([]byte(trimmed), &req); err == nil && req.Input != nil {
			return *req.Input, nil
		}
	}

	var val string
	if err := json.Unmarshal([]byte(trimmed), &val); err == nil {
		return val, nil
	}

	// Fallback: plain text
	return text, nil
}

func (h *JSONHandler) Output(ctx context.Context, res Result) error {
	return h.Encoder.Encode(NewJSONResult(res))
}

// NewJSONResult converts a Result to its wire form.
func NewJSONResult(res Result) JSONResult {
	out := JSONResult{
		Line:  res.Line,
		Input: res.Input,
	}
	if res.Run != nil {
		out.RunID = res.Run.ID
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
		out.Kind = res.Kind
		return out
	}
	if res.Run != nil {
		out.Output = res.Run.Output
		out.FinalState = res.Run.Final
		out.Path = res.Run.Path
	}
	return out
}
