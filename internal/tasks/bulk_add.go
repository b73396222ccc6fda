package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// BulkAddOpts contains configuration for bulk catalog adds.
type BulkAddOpts struct {
	Workers   int     // Concurrent requests (default: 3, max: 10)
	RateLimit float64 // Requests per second (default: 2)
}

// AddOutcome is what happened to one entry during a bulk add.
type AddOutcome int

const (
	NotAttempted AddOutcome = iota
	Added
	Skipped
	Failed
)

func (o AddOutcome) String() string {
	return [...]string{"not attempted", "added", "skipped", "failed"}[o]
}

// BulkAddItem is the result for one catalog entry.
type BulkAddItem struct {
	Entry   models.CatalogEntry
	Outcome AddOutcome
	Err     error
}

// BulkAddResult summarizes a bulk add. Items keep the input order.
type BulkAddResult struct {
	Total   int
	Added   int
	Skipped int
	Failed  int

	// NotAttempted counts entries left unsent after the group stopped early.
	NotAttempted int
	Items        []BulkAddItem
}

// BulkAdder adds many catalog entries to the user's list as PLAN_TO_WATCH.
type BulkAdder struct {
	session *session.Context
	client  services.MovieClient
	logger  *log.Logger
}

// NewBulkAdder creates a [BulkAdder].
func NewBulkAdder(sess *session.Context, client services.MovieClient, logger *log.Logger) *BulkAdder {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BulkAdder{session: sess, client: client, logger: logger}
}

// Run fetches the user's list once, skips titles already on it and adds the rest through a rate-limited
// worker group.
//
// The first 401 cancels the remaining adds and expires the session; the partial result is returned with the error.
func (b *BulkAdder) Run(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	entries []models.CatalogEntry,
	opts BulkAddOpts,
) (*BulkAddResult, error) {
	if b.client == nil {
		return nil, fmt.Errorf("%w: movie service not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Workers <= 0 {
		opts.Workers = 3
	}
	if opts.Workers > 10 {
		opts.Workers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	s, err := b.session.Require()
	if err != nil {
		return nil, err
	}

	total := len(entries)
	result := &BulkAddResult{Total: total, Items: make([]BulkAddItem, total)}
	for i, e := range entries {
		result.Items[i] = BulkAddItem{Entry: e}
	}

	b.sendProgress(prog, fetchExistingUpdate(total))
	existing, err := b.client.Movies(ctx, s.Token)
	if err != nil {
		b.session.Expire(err)
		return result, err
	}

	onList := make(map[string]bool, len(existing))
	for _, m := range existing {
		onList[m.Title] = true
	}

	var (
		mu   sync.Mutex
		step int
	)
	record := func(i int, outcome AddOutcome, err error) {
		mu.Lock()
		defer mu.Unlock()

		step++
		item := &result.Items[i]
		item.Outcome, item.Err = outcome, err

		switch outcome {
		case Added:
			result.Added++
			b.sendProgress(prog, addedUpdate(step, total, item.Entry))
		case Skipped:
			result.Skipped++
			b.sendProgress(prog, skippedUpdate(step, total, item.Entry))
		case Failed:
			result.Failed++
			b.sendProgress(prog, addFailedUpdate(step, total, item.Entry, err))
		}
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, e := range entries {
		if onList[e.Title] {
			record(i, Skipped, nil)
			continue
		}
		onList[e.Title] = true

		if gctx.Err() != nil {
			break
		}

		token := s.Token
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return nil
			}

			err := b.client.CreateMovie(gctx, token, e.NewMovie(models.PlanToWatch, nil, nil))
			if errors.Is(err, shared.ErrUnauthorized) {
				record(i, Failed, err)
				return err
			}
			if err != nil {
				b.logger.Warn("bulk add failed", "title", e.Title, "error", err)
				record(i, Failed, err)
				return nil
			}
			record(i, Added, nil)
			return nil
		})
	}

	err = g.Wait()
	for _, item := range result.Items {
		if item.Outcome == NotAttempted {
			result.NotAttempted++
		}
	}

	if err != nil {
		b.session.Expire(err)
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// sendProgress sends a progress update without blocking.
func (b *BulkAdder) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
