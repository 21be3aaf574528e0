package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes config.toml from the embedded template unless it exists, then loads it.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		return fmt.Errorf("%w: --config must not be empty", shared.ErrMissingArgument)
	}

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	r.config = config
	r.configPath = configPath
	r.wire()

	r.writePlain("✓ Configuration ready: %s\n", configPath)
	r.writePlain("Movies: %s\n", config.API.MoviesURL)
	r.writePlain("Auth:   %s\n", config.API.AuthBaseURL)
	return nil
}
