package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/openaims/sectorflow/internal/server"
	"github.com/openaims/sectorflow/pkg/engine"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

The server exposes layout computation, classification lookup, and saved
views. Cache and store backends come from the config file; without one,
caching is disabled and views live in memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Server.Listen = listen
	}

	cacheBackend, err := cfg.NewCache(ctx)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	views, err := cfg.NewStore(ctx)
	if err != nil {
		_ = cacheBackend.Close()
		return fmt.Errorf("initialize store: %w", err)
	}

	runner := engine.NewRunner(cacheBackend, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Options{
		Config: cfg,
		Runner: runner,
		Views:  views,
		Logger: c.Logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	c.Logger.Info("serving", "addr", cfg.Server.Listen,
		"cache", cfg.Cache.Backend, "store", cfg.Store.Backend)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := views.Close(shutdownCtx); err != nil {
		c.Logger.Warn("store close failed", "err", err)
	}
	return nil
}
