package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override config.toml values.
const (
	EnvAPIURL      = "FLICK_API_URL"
	EnvStoragePath = "FLICK_STORAGE_PATH"
	EnvLogLevel    = "FLICK_LOG_LEVEL"
)

// LoadEnv loads KEY=VALUE pairs from the given dotenv files into the process environment.
//
// Missing files are skipped and variables already set in the environment win.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values with any FLICK_* environment variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.Service.BaseURL = v
	}
	if v := os.Getenv(EnvStoragePath); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}
