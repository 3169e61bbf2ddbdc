package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the HTTP server: the mod-three page at /, the machine API under /machines,
Prometheus metrics at /metrics and the OpenAPI document at /openapi.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		ctx, stop := cli.WithShutdownSignals(context.Background())
		defer stop()

		store, closeStore, err := cli.NewStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		metrics := observability.NewMetrics()
		reg, err := cli.NewRegistry(ctx, cfg, store, logger,
			automata.WithLogger(logger),
			automata.WithLifecycleHooks(metrics.Hooks()),
		)
		if err != nil {
			return err
		}

		handler, err := httpAdapter.NewHandler(reg,
			httpAdapter.WithMetrics(metrics),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMaxInputSize(cfg.MaxInputSize),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting automata server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("start shutdown", "signal", fmt.Sprint(cli.ShutdownSignal(ctx)))

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("automata server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on (overrides AUTOMATA_ADDR)")
}
