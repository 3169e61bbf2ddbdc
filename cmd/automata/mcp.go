package main

import (
	"context"
	"fmt"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts an MCP server exposing the registered machines as tools
(process_input, list_machines, describe_machine).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		baseURL, _ := cmd.Flags().GetString("base-url")

		ctx, stop := cli.WithShutdownSignals(context.Background())
		defer stop()

		store, closeStore, err := cli.NewStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		reg, err := cli.NewRegistry(ctx, cfg, store, logger, automata.WithLogger(logger))
		if err != nil {
			return err
		}

		// The logger writes to stderr, so stdout stays clean for JSON-RPC.
		srv := mcp.NewServer(reg,
			mcp.WithLogger(logger),
			mcp.WithMaxInputSize(cfg.MaxInputSize),
		)

		switch transport {
		case "stdio":
			logger.Info("starting automata MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			if baseURL == "" {
				baseURL = "http://localhost" + addr
			}
			logger.Info("starting automata MCP server (SSE)", "addr", addr)
			if err := srv.ServeSSE(ctx, addr, baseURL); err != nil {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "", "Public base URL for SSE clients (default http://localhost<addr>)")
}
