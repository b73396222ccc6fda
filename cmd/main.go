package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/flick/internal/repositories"
	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/shared"
	"github.com/urfave/cli/v3"
)

const configPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(".env"); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}
	config.ApplyEnv()
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	db, err := shared.OpenStorage(config.Storage)
	if err != nil {
		logger.Fatalf("failed to open session storage: %v", err)
	}

	apiService := services.NewAPIService(config.Service.BaseURL, nil).
		WithUserAgent(config.Service.UserAgent).
		WithLogger(logger)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Store:      repositories.NewSlotRepository(db),
		API:        apiService,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "flick",
		Usage:    "Discover movies and keep a personal watch list",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	err = app.Run(context.Background(), os.Args)
	db.Close()

	if err != nil {
		if errors.Is(err, shared.ErrCancelled) {
			logger.Warn("cancelled")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
