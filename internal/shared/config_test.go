package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Path != "./flick.db" {
			t.Errorf("expected storage path ./flick.db, got %s", config.Storage.Path)
		}

		if config.Service.BaseURL != "http://127.0.0.1:8000" {
			t.Errorf("expected base URL http://127.0.0.1:8000, got %s", config.Service.BaseURL)
		}

		if config.Bulk.Workers != 3 {
			t.Errorf("expected 3 bulk workers, got %d", config.Bulk.Workers)
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level info, got %s", config.Log.Level)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Storage.Path != DefaultConfig().Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[service]
base_url = "https://movies.example.com/api"

[storage]
path = "/custom/flick.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Service.BaseURL != "https://movies.example.com/api" {
			t.Errorf("expected custom base URL, got %s", config.Service.BaseURL)
		}
		if config.Storage.Path != "/custom/flick.db" {
			t.Errorf("expected storage path /custom/flick.db, got %s", config.Storage.Path)
		}
		if config.Bulk.RateLimit != 2.0 {
			t.Errorf("expected unset keys to keep defaults, got rate limit %v", config.Bulk.RateLimit)
		}
	})

	t.Run("LoadConfig With Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[service\nbase_url = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig With Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestEnv(t *testing.T) {
	t.Run("ApplyEnv overrides config", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "http://env.example.com")
		t.Setenv(EnvStoragePath, ":memory:")
		t.Setenv(EnvLogLevel, "debug")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Service.BaseURL != "http://env.example.com" {
			t.Errorf("expected env base URL, got %s", config.Service.BaseURL)
		}
		if config.Storage.Path != ":memory:" {
			t.Errorf("expected env storage path, got %s", config.Storage.Path)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected env log level, got %s", config.Log.Level)
		}
	})

	t.Run("LoadEnv reads dotenv files and skips missing ones", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "")
		os.Unsetenv(EnvAPIURL)

		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		if err := os.WriteFile(envPath, []byte(EnvAPIURL+"=http://dotenv.example.com\n"), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		if err := LoadEnv(filepath.Join(dir, "missing.env"), envPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := os.Getenv(EnvAPIURL); got != "http://dotenv.example.com" {
			t.Errorf("expected dotenv value, got %q", got)
		}
	})
}
