package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/marquee/internal/server"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 5 * time.Second

// DevAPI serves the in-memory stub until the context is cancelled.
func (r *Runner) DevAPI(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port > 0 {
		cfg.Port = port
	}

	srv, err := server.NewDevServer(cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to create devapi server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("devapi listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	r.writePlain("✓ devapi listening on http://%s\n", srv.Addr)
	r.writePlain("Point the client at it with MARQUEE_AUTH_URL=http://%s MARQUEE_MOVIES_URL=http://%s/movies/paginated\n", srv.Addr, srv.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("devapi server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.logger.Info("shutting down devapi", "accounts", srv.API.Accounts())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("devapi shutdown failed: %w", err)
	}
	return nil
}
