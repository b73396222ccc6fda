package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/shared"
	"github.com/desertthunder/flick/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: session storage not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	logger := shared.WithLogger(fileLogger, "run", shared.GenerateID())
	r.logger.Info("starting TUI", "log", r.config.Log.File)

	sess := session.NewContext(r.store, logger)
	client := services.NewMovieService(r.api.WithLogger(logger))

	model := ui.NewModel(ctx, sess, client, r.catalog, logger)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
