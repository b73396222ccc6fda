package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/flick/internal/formatter"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/shared"
	"github.com/desertthunder/flick/internal/tasks"
	"github.com/urfave/cli/v3"
)

// catalogCard is the JSON shape of `catalog list --json`.
type catalogCard struct {
	models.CatalogEntry
	Rating *models.RatingSummary `json:"rating,omitempty"`
}

// CatalogList prints the catalog joined with the global ratings. A ratings failure only drops the ratings.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	wanted := make(map[int]bool)
	for _, e := range r.catalog.Filter(cmd.String("genre"), int(cmd.Int("year"))) {
		wanted[e.ID] = true
	}

	d := tasks.NewDiscovery(r.session, r.client, r.catalog, r.logger)
	d.Mount()
	d.ApplyRatings(d.BeginRatings().Run(ctx))

	cards := make([]tasks.Card, 0, len(wanted))
	for _, c := range d.Cards() {
		if wanted[c.Entry.ID] {
			cards = append(cards, c)
		}
	}

	if cmd.Bool("json") {
		out := make([]catalogCard, len(cards))
		for i, c := range cards {
			out[i] = catalogCard{CatalogEntry: c.Entry, Rating: c.Rating}
		}
		return r.writeJSON(out, true)
	}

	rows := make([]formatter.CatalogRow, len(cards))
	for i, c := range cards {
		rows[i] = formatter.CatalogRow{Entry: c.Entry, Stars: c.Stars(), Rating: c.Label()}
	}
	r.writePlain("%s\n", formatter.CatalogTable(rows))
	if !d.RatingsLoaded() {
		r.writePlain("Global ratings are unavailable.\n")
	}
	return nil
}

// CatalogAdd adds one catalog entry to the user's list as plan to watch.
func (r *Runner) CatalogAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	id, err := parseCatalogID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	d := tasks.NewDiscovery(r.session, r.client, r.catalog, r.logger)
	d.Mount()

	call, err := d.BeginAdd(id)
	if err != nil {
		return err
	}
	return r.applyAdd(ctx, d, call)
}

// CatalogWatched adds one catalog entry as watched with an optional rating and review.
//
// Without --rating or --review the values are prompted for.
func (r *Runner) CatalogWatched(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	id, err := parseCatalogID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	d := tasks.NewDiscovery(r.session, r.client, r.catalog, r.logger)
	d.Mount()

	prompt, err := d.BeginMarkWatched(id)
	if err != nil {
		return err
	}

	input, err := r.reviewInput(cmd, prompt)
	if err != nil {
		return err
	}

	call, err := d.SubmitReview(id, input)
	if err != nil {
		return err
	}
	return r.applyAdd(ctx, d, call)
}

// CatalogAddAll adds every matching entry that is not on the user's list yet.
func (r *Runner) CatalogAddAll(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	entries := r.catalog.Filter(cmd.String("genre"), int(cmd.Int("year")))
	if len(entries) == 0 {
		return fmt.Errorf("%w: no catalog entries match", shared.ErrInvalidArgument)
	}

	opts := tasks.BulkAddOpts{Workers: r.config.Bulk.Workers, RateLimit: r.config.Bulk.RateLimit}
	if w := cmd.Int("workers"); w > 0 {
		opts.Workers = int(w)
	}
	if rate := cmd.Float("rate"); rate > 0 {
		opts.RateLimit = rate
	}

	r.logger.Info("starting bulk add", "entries", len(entries), "workers", opts.Workers, "rate", opts.RateLimit)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchExisting:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.AddEntries:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := tasks.NewBulkAdder(r.session, r.client, r.logger).Run(ctx, progressCh, entries, opts)
	close(progressCh)
	<-done

	if result != nil {
		r.writePlain("\n")
		r.writePlainHeader("Bulk add complete")
		r.writePlain("Total: %d\nAdded: %d\nSkipped: %d\nFailed: %d\n", result.Total, result.Added, result.Skipped, result.Failed)
		if result.NotAttempted > 0 {
			r.writePlain("Not attempted: %d\n", result.NotAttempted)
		}

		if result.Failed > 0 {
			r.writePlain("\nFailed entries:\n")
			for _, item := range result.Items {
				if item.Outcome == tasks.Failed {
					r.writePlain("  - %s: %v\n", item.Entry.Title, item.Err)
				}
			}
		}
	}
	return err
}

func (r *Runner) applyAdd(ctx context.Context, d *tasks.Discovery, call *tasks.Call[struct{}]) error {
	res := call.Run(ctx)
	if d.ApplyAdd(res) == tasks.RouteAuth {
		return fmt.Errorf("%w: log in again with `flick auth login`", res.Err)
	}
	if d.Error != "" {
		return screenError(d.Error, res.Err)
	}
	r.writeMessages(d.Warning, d.Notice)
	return nil
}

// reviewInput reads --rating and --review, prompting with p when neither is set.
func (r *Runner) reviewInput(cmd *cli.Command, p models.ReviewPrompt) (models.ReviewInput, error) {
	if cmd.IsSet("rating") || cmd.IsSet("review") {
		input := models.ReviewInput{Rating: p.Rating, Review: p.Review}
		if cmd.IsSet("rating") {
			input.Rating = cmd.String("rating")
		}
		if cmd.IsSet("review") {
			input.Review = cmd.String("review")
		}
		return input, nil
	}
	return r.prompt.Review(p)
}

func parseCatalogID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: catalog id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: catalog id %q is not a number", shared.ErrInvalidArgument, s)
	}
	return id, nil
}
