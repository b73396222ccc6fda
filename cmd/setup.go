package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/flick/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file if needed, then initializes the session database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	config.ApplyEnv()

	r.logger.Info("initializing session storage", "path", config.Storage.Path)

	db, err := shared.OpenStorage(config.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", config.Storage.Path)
	r.writePlain("✓ Config: %s\n", configPath)
	r.writePlain("✓ Session storage: %s\n", config.Storage.Path)
	r.writePlain("✓ Service: %s\n", config.Service.BaseURL)
	return nil
}
