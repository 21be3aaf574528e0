package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	err = ui.Run(ctx, ui.Options{
		Movies:  r.movies,
		Auth:    r.auth,
		Store:   r.store,
		Config:  r.config,
		Logger:  r.logger,
		Rand:    r.rng,
		Browser: r.browser,
	})
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
