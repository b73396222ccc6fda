package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/flick/internal/formatter"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/shared"
	"github.com/desertthunder/flick/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MoviesList prints the user's list, filtered by status and search text.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	filter, err := models.ParseStatusFilter(cmd.String("status"))
	if err != nil {
		return err
	}

	a, err := r.loadAccount(ctx)
	if err != nil {
		return err
	}
	a.Filter = filter
	a.Search = cmd.String("search")

	visible := a.Visible()
	if cmd.Bool("json") {
		return r.writeJSON(visible, true)
	}

	if len(visible) == 0 {
		return r.writePlain("No movies to show.\n")
	}
	r.writePlain("%s's list (%s)\n", a.Username, a.Filter.Label())
	return r.writePlain("%s\n", formatter.MoviesTable(visible))
}

// MoviesAdd creates a movie from flags, or from a prompt when --title is omitted.
func (r *Runner) MoviesAdd(ctx context.Context, cmd *cli.Command) error {
	a, err := r.loadAccount(ctx)
	if err != nil {
		return err
	}

	var form models.MovieForm
	if title := cmd.String("title"); title != "" {
		status, err := models.ParseStatus(cmd.String("status"))
		if err != nil {
			return err
		}
		form = models.MovieForm{
			Title:    title,
			Status:   status,
			Rating:   cmd.String("rating"),
			Review:   cmd.String("review"),
			ImageURL: cmd.String("image"),
		}
	} else if form, err = r.prompt.Movie(); err != nil {
		return err
	}

	call, err := a.BeginCreate(form)
	if err != nil {
		return err
	}
	return r.applyMutation(ctx, a, call)
}

// MoviesStatus sends a status-only update.
func (r *Runner) MoviesStatus(ctx context.Context, cmd *cli.Command) error {
	id, err := parseRecordID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	if cmd.StringArg("status") == "" {
		return fmt.Errorf("%w: status", shared.ErrMissingArgument)
	}
	status, err := models.ParseStatus(cmd.StringArg("status"))
	if err != nil {
		return err
	}

	a, err := r.loadAccount(ctx)
	if err != nil {
		return err
	}

	call, err := a.BeginStatusUpdate(id, status)
	if err != nil {
		return err
	}
	return r.applyMutation(ctx, a, call)
}

// MoviesReview marks a movie watched with a rating and review, prompting with the current values when no
// flag is given.
func (r *Runner) MoviesReview(ctx context.Context, cmd *cli.Command) error {
	id, err := parseRecordID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	a, err := r.loadAccount(ctx)
	if err != nil {
		return err
	}

	prompt, err := a.BeginReview(id)
	if err != nil {
		return err
	}

	input, err := r.reviewInput(cmd, prompt)
	if err != nil {
		return err
	}

	call, err := a.SubmitReview(id, input)
	if err != nil {
		return err
	}
	return r.applyMutation(ctx, a, call)
}

// MoviesDelete deletes a movie after confirmation. Declining sends nothing.
func (r *Runner) MoviesDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseRecordID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	a, err := r.loadAccount(ctx)
	if err != nil {
		return err
	}

	movie, err := a.Find(id)
	if err != nil {
		return err
	}

	confirmed := cmd.Bool("yes")
	if !confirmed {
		if confirmed, err = r.prompt.Confirm(fmt.Sprintf("Delete %q?", movie.Title)); err != nil {
			return err
		}
	}

	call, err := a.BeginDelete(id, confirmed)
	if errors.Is(err, shared.ErrCancelled) {
		return r.writePlain("Cancelled\n")
	}
	if err != nil {
		return err
	}
	return r.applyMutation(ctx, a, call)
}

// MoviesExport writes the user's list to a file, or to stdout with --output -.
func (r *Runner) MoviesExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	a, err := r.loadAccount(ctx)
	if err != nil {
		return err
	}
	list := formatter.MovieList{Username: a.Username, Movies: a.Movies}

	if output == "-" {
		data, err := formatter.Export(list, format)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	path, err := formatter.WriteExport(list, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("list exported", "path", path, "movies", len(list.Movies))
	return r.writePlain("✓ Exported %d movies to %s\n", len(list.Movies), path)
}

// loadAccount mounts the account screen and loads the list. It fails without a session.
func (r *Runner) loadAccount(ctx context.Context) (*tasks.Account, error) {
	if err := r.requireSession(); err != nil {
		return nil, err
	}

	a := tasks.NewAccount(r.session, r.client, r.logger)
	if a.Mount() == tasks.RouteAuth {
		return nil, fmt.Errorf("%w: run `flick auth login` first", shared.ErrNotAuthenticated)
	}

	call, err := a.BeginFetch()
	if err != nil {
		return nil, err
	}

	res := call.Run(ctx)
	if a.ApplyFetch(res) == tasks.RouteAuth {
		return nil, fmt.Errorf("%w: log in again with `flick auth login`", res.Err)
	}
	if a.Error != "" {
		return nil, screenError(a.Error, res.Err)
	}
	return a, nil
}

func (r *Runner) applyMutation(ctx context.Context, a *tasks.Account, call *tasks.Call[[]models.MovieRecord]) error {
	res := call.Run(ctx)
	if a.ApplyMutation(res) == tasks.RouteAuth {
		return fmt.Errorf("%w: log in again with `flick auth login`", res.Err)
	}
	if a.Error != "" {
		return screenError(a.Error, res.Err)
	}
	r.writeMessages(a.Warning, a.Notice)
	return nil
}

func parseRecordID(s string) (models.RecordID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	return models.RecordID(s), nil
}
