package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/secr-engine/internal/config"
	"github.com/rshade/secr-engine/internal/engine"
	"github.com/rshade/secr-engine/internal/factors"
	"github.com/rshade/secr-engine/internal/httpapi"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation engine over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg.LogLevel)

			catalog, err := factors.NewCatalog()
			if err != nil {
				return err
			}

			server := httpapi.NewServer(
				engine.New(catalog),
				catalog,
				httpapi.NewHistoryStore(cfg.HistorySize),
				logger,
			)
			httpServer := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           server.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Graceful shutdown on interrupt/terminate.
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			errCh := make(chan error, 1)
			go func() {
				logger.Info().
					Str("addr", cfg.ListenAddr).
					Str("factor_version", catalog.Version()).
					Msg("starting HTTP server")
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
				logger.Info().Msg("shutdown signal received")
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer shutdownCancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}
}
