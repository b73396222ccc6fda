package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	store      session.Store
	session    *session.Context
	api        *services.APIService
	client     services.MovieClient
	catalog    models.Catalog
	prompt     Prompter
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      session.Store
	API        *services.APIService
	Client     services.MovieClient
	Catalog    models.Catalog
	Prompter   Prompter
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.Service.BaseURL, nil).
			WithUserAgent(opts.Config.Service.UserAgent).
			WithLogger(opts.Logger)
	}
	if opts.Client == nil {
		opts.Client = services.NewMovieService(opts.API)
	}
	if opts.Catalog == nil {
		opts.Catalog = models.LoadCatalog()
	}
	if opts.Prompter == nil {
		opts.Prompter = huhPrompter{}
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		store:      opts.Store,
		api:        opts.API,
		client:     opts.Client,
		catalog:    opts.Catalog,
		prompt:     opts.Prompter,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	if opts.Store != nil {
		r.session = session.NewContext(opts.Store, opts.Logger)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, catalogCommand, moviesCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireSession reports a missing session store as an unavailable service.
func (r *Runner) requireSession() error {
	if r.session == nil {
		return fmt.Errorf("%w: session storage not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeMessages prints a screen's warning and notice lines.
func (r *Runner) writeMessages(warning, notice string) {
	if warning != "" {
		r.logger.Warn(warning)
		r.writePlain("⚠ %s\n", warning)
	}
	if notice != "" {
		r.writePlain("✓ %s\n", notice)
	}
}

// screenError turns a controller's displayed message into a command error, keeping the cause for errors.Is.
func screenError(message string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", shared.ErrValidation, message)
	}
	return fmt.Errorf("%s: %w", message, cause)
}
