package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/go-chi/chi/v5"
)

// Error kinds added on top of domain.ErrorKind for request-level failures.
const (
	KindInvalidDefinition domain.ErrorKind = "invalid_definition"
	KindNotFound          domain.ErrorKind = "not_found"
)

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
	RunID string           `json:"run_id,omitempty"`
}

// ProcessRequest is the body of POST /machines/{name}/process.
type ProcessRequest struct {
	Input *string `json:"input"`
}

// ProcessResponse is the result of an accepted run.
type ProcessResponse struct {
	Output     domain.Output      `json:"output"`
	FinalState domain.StateName   `json:"final_state"`
	Path       []domain.StateName `json:"path"`
	RunID      string             `json:"run_id"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error, kind domain.ErrorKind) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind}, s.Logger)
}

// writeLookupError maps registry lookup failures to 404 or 500. A name no store
// can hold is reported as not found.
func (s *Server) writeLookupError(w http.ResponseWriter, name string, err error) {
	if errors.Is(err, domain.ErrDefinitionNotFound) || errors.Is(err, domain.ErrInvalidName) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("machine %q not found", name), KindNotFound)
		return
	}
	s.Logger.Error("machine lookup failed", "machine", name, "error", err)
	s.writeError(w, http.StatusInternalServerError, err, domain.KindUnknown)
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Registry.Names(r.Context())
	if err != nil {
		s.Logger.Error("list machines failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err, domain.KindUnknown)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"machines": names}, s.Logger)
}

// GetMachine handles the GET /machines/{name} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	eng, err := s.Registry.Get(r.Context(), name)
	if err != nil {
		s.writeLookupError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, eng.Definition(), s.Logger)
}

// PutMachine handles the PUT /machines/{name} request.
// The body is JSON, TOML or YAML according to Content-Type; YAML is the default.
func (s *Server) PutMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err), KindInvalidDefinition)
		return
	}

	def, err := schema.Parse(data, formatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err, KindInvalidDefinition)
		return
	}
	def.Name = name

	eng, err := s.Registry.Register(r.Context(), def)
	if err != nil {
		if errors.Is(err, registry.ErrNameRequired) || errors.Is(err, domain.ErrInvalidName) {
			s.writeError(w, http.StatusBadRequest, err, KindInvalidDefinition)
			return
		}
		kind := domain.KindOf(err)
		if kind == domain.KindUnknown {
			var agg *schema.AggregateError
			if !errors.As(err, &agg) {
				s.Logger.Error("register machine failed", "machine", name, "error", err)
				s.writeError(w, http.StatusInternalServerError, err, kind)
				return
			}
			kind = KindInvalidDefinition
		}
		s.writeError(w, http.StatusUnprocessableEntity, err, kind)
		return
	}

	s.Logger.Info("machine registered", "machine", name)
	writeJSON(w, http.StatusCreated, eng.Definition(), s.Logger)
}

// DeleteMachine handles the DELETE /machines/{name} request.
func (s *Server) DeleteMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Registry.Remove(r.Context(), name); err != nil {
		if errors.Is(err, domain.ErrInvalidName) {
			s.writeError(w, http.StatusBadRequest, err, KindInvalidDefinition)
			return
		}
		s.Logger.Error("delete machine failed", "machine", name, "error", err)
		s.writeError(w, http.StatusInternalServerError, err, domain.KindUnknown)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProcessInput handles the POST /machines/{name}/process request.
func (s *Server) ProcessInput(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body ProcessRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err), runner.KindInvalidInput)
		return
	}
	if body.Input == nil {
		s.writeError(w, http.StatusBadRequest, errors.New("input is required"), runner.KindInvalidInput)
		return
	}

	input, err := runner.SanitizeInputWithLimit(*body.Input, s.MaxInputSize)
	if err != nil {
		s.Logger.Warn("input rejected", "machine", name, "error", err, "size", len(*body.Input))
		s.writeError(w, http.StatusBadRequest, err, runner.KindInvalidInput)
		return
	}

	eng, err := s.Registry.Get(r.Context(), name)
	if err != nil {
		s.writeLookupError(w, name, err)
		return
	}

	run, err := eng.Trace(r.Context(), input)
	if err != nil {
		resp := ErrorResponse{Error: err.Error(), Kind: domain.KindOf(err)}
		if run != nil {
			resp.RunID = run.ID
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp, s.Logger)
		return
	}

	writeJSON(w, http.StatusOK, ProcessResponse{
		Output:     run.Output,
		FinalState: run.Final,
		Path:       run.Path,
		RunID:      run.ID,
	}, s.Logger)
}

// GetGraph handles the GET /machines/{name}/graph request.
// With ?input=... the states visited by that input are highlighted, even when
// the run fails part way.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	eng, err := s.Registry.Get(r.Context(), name)
	if err != nil {
		s.writeLookupError(w, name, err)
		return
	}

	var overlay *graph.GraphOverlay
	if r.URL.Query().Has("input") {
		input, err := runner.SanitizeInputWithLimit(r.URL.Query().Get("input"), s.MaxInputSize)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err, runner.KindInvalidInput)
			return
		}
		// The partial path is still worth drawing.
		run, _ := eng.Machine().Trace(input)
		overlay = &graph.GraphOverlay{CurrentState: string(run.Final)}
		for _, st := range run.Path {
			overlay.VisitedStates = append(overlay.VisitedStates, string(st))
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(eng.Definition(), overlay))
}

func formatFromContentType(ct string) schema.Format {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return schema.FormatYAML
	}
	switch mediaType {
	case "application/json":
		return schema.FormatJSON
	case "application/toml":
		return schema.FormatTOML
	default:
		return schema.FormatYAML
	}
}
