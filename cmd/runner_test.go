package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/shared"
	tu "github.com/desertthunder/flick/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			store := tu.NewMemoryStore(nil)
			api := services.NewAPIService("http://example.test", nil)
			client := services.NewMovieService(api)
			prompter := &fakePrompter{}

			runner := NewRunner(RunnerOpts{
				Config:   config,
				Logger:   logger,
				Output:   output,
				Store:    store,
				API:      api,
				Client:   client,
				Prompter: prompter,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.client != client {
				t.Error("expected client to be set")
			}
			if runner.prompt != prompter {
				t.Error("expected prompter to be set")
			}
			if runner.session == nil {
				t.Error("expected session to be built from store")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil api builds one from config", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Service.BaseURL = "http://movies.test"
			runner := NewRunner(RunnerOpts{Config: config})

			if runner.api == nil {
				t.Fatal("expected api to be set")
			}
			if runner.api.BaseURL() != "http://movies.test" {
				t.Errorf("expected base URL from config, got %s", runner.api.BaseURL())
			}
			if runner.client == nil {
				t.Error("expected default movie client to be set")
			}
		})

		t.Run("with nil catalog loads the embedded one", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if len(runner.catalog) == 0 {
				t.Error("expected embedded catalog to be loaded")
			}
		})

		t.Run("with nil prompter uses terminal forms", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if _, ok := runner.prompt.(huhPrompter); !ok {
				t.Errorf("expected huhPrompter, got %T", runner.prompt)
			}
		})

		t.Run("without store has no session", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.session != nil {
				t.Error("expected nil session without a store")
			}
			if err := runner.requireSession(); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("writePlainln surrounds text with newlines", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlainln("done"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "\ndone\n" {
				t.Errorf("expected %q, got %q", "\ndone\n", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writeMessages", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		runner.writeMessages("Rating ignored", "Saved")

		result := output.String()
		if !strings.Contains(result, "⚠ Rating ignored") {
			t.Errorf("expected warning line, got %q", result)
		}
		if !strings.Contains(result, "✓ Saved") {
			t.Errorf("expected notice line, got %q", result)
		}
	})

	t.Run("screenError", func(t *testing.T) {
		t.Run("keeps cause", func(t *testing.T) {
			err := screenError("Failed to load your movies.", shared.ErrAPIRequest)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected cause to be kept, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), "Failed to load your movies.") {
				t.Errorf("expected message prefix, got %v", err)
			}
		})

		t.Run("without cause is a validation error", func(t *testing.T) {
			err := screenError("Please enter a title.", nil)
			if !errors.Is(err, shared.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		want := map[string]bool{"setup": false, "auth": false, "catalog": false, "movies": false, "api": false, "tui": false}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			if _, ok := want[cmd.Name]; ok {
				want[cmd.Name] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s command to be registered", name)
			}
		}
	})
}
