// Package mcp exposes the machine registry as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ProcessArgs are the arguments of the process_input tool.
type ProcessArgs struct {
	Machine string `json:"machine"`
	Input   string `json:"input"`
}

// ProcessResponse is the structured result of process_input.
// Runs that fail are reported in Error and Kind rather than as tool errors, so
// the caller still sees the partial path.
type ProcessResponse struct {
	Machine    string             `json:"machine" jsonschema_description:"The machine that ran"`
	Accepted   bool               `json:"accepted" jsonschema_description:"Whether the run ended in an accepting state"`
	Output     domain.Output      `json:"output,omitempty" jsonschema_description:"Output of the final state"`
	FinalState domain.StateName   `json:"final_state" jsonschema_description:"State the run stopped in"`
	Path       []domain.StateName `json:"path" jsonschema_description:"Every state visited"`
	RunID      string             `json:"run_id,omitempty"`
	Error      string             `json:"error,omitempty"`
	Kind       domain.ErrorKind   `json:"kind,omitempty" jsonschema_description:"Error classification"`
}

// Server wraps the registry and exposes it as an MCP Server.
type Server struct {
	registry     *registry.Registry
	mcpServer    *server.MCPServer
	logger       *slog.Logger
	maxInputSize int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger. It must not write to stdout when serving stdio.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize overrides the input size limit in bytes.
func WithMaxInputSize(size int) Option {
	return func(s *Server) {
		s.maxInputSize = size
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		registry:     reg,
		mcpServer:    server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
		logger:       logging.NewNop(),
		maxInputSize: runner.MaxInputSize(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	processTool := mcp.NewTool("process_input",
		mcp.WithDescription("Run an input string through a registered machine and return the output of the final state."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Name of the machine, e.g. modthree")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string; every character is one token")),
		mcp.WithOutputSchema[ProcessResponse](),
	)
	s.mcpServer.AddTool(processTool, mcp.NewStructuredToolHandler(s.handleProcess))

	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the names of the registered machines."),
	), s.handleList)

	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Describe a machine as markdown: alphabet, states and transition table."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Name of the machine")),
	), s.handleDescribe)
}

func (s *Server) handleProcess(ctx context.Context, request mcp.CallToolRequest, args ProcessArgs) (ProcessResponse, error) {
	if args.Machine == "" {
		return ProcessResponse{}, errors.New("machine is required")
	}

	clean, err := runner.SanitizeInputWithLimit(args.Input, s.maxInputSize)
	if err != nil {
		s.logger.Warn("MCP process: input rejected", "error", err, "size", len(args.Input))
		return ProcessResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	eng, err := s.registry.Get(ctx, args.Machine)
	if err != nil {
		return ProcessResponse{}, fmt.Errorf("machine %q unavailable: %w", args.Machine, err)
	}

	run, err := eng.Trace(ctx, clean)
	if run == nil {
		return ProcessResponse{}, fmt.Errorf("run failed: %w", err)
	}

	resp := ProcessResponse{
		Machine:    args.Machine,
		FinalState: run.Final,
		Path:       run.Path,
		RunID:      run.ID,
	}
	if err != nil {
		resp.Error = err.Error()
		resp.Kind = domain.KindOf(err)
		return resp, nil
	}
	resp.Accepted = true
	resp.Output = run.Output
	return resp, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.registry.Names(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("machine")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	eng, err := s.registry.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("machine %q unavailable: %v", name, err)), nil
	}
	return mcp.NewToolResultText(tui.DescribeMarkdown(eng.Definition())), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("automata://machines", "Registered Machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.registry.Names(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list machines: %w", err)
		}
		defs := make([]any, 0, len(names))
		for _, name := range names {
			eng, err := s.registry.Get(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("failed to load machine %q: %w", name, err)
			}
			defs = append(defs, eng.Definition())
		}
		jsonBytes, _ := json.Marshal(defs)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "automata://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
