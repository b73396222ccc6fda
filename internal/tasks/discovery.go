package tasks

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/shared"
)

const (
	addFailedMessage     = "Could not add the movie to your list."
	watchedFailedMessage = "Could not save your review."
)

// Card is a catalog entry joined with its global rating, if one is visible.
type Card struct {
	Entry  models.CatalogEntry
	Rating *models.RatingSummary
}

// Stars renders the card's global rating, or an empty string.
func (c Card) Stars() string {
	if c.Rating == nil {
		return ""
	}
	return models.Stars(c.Rating.RoundedRating)
}

// Label renders the card's global rating line, or an empty string.
func (c Card) Label() string {
	if c.Rating == nil {
		return ""
	}
	return models.RatingLabel(*c.Rating)
}

// Discovery is the catalog screen. It needs no session to render.
type Discovery struct {
	screen

	catalog models.Catalog
	ratings map[string]models.RatingSummary
	busyID  int
	titles  map[string]string

	Error   string
	Notice  string
	Warning string
}

// NewDiscovery creates a [Discovery] over catalog.
func NewDiscovery(sess *session.Context, client services.MovieClient, catalog models.Catalog, logger *log.Logger) *Discovery {
	return &Discovery{
		screen:  newScreen(sess, client, logger),
		catalog: catalog,
		titles:  make(map[string]string),
	}
}

// Mount starts the screen. Discovery has no guard.
func (d *Discovery) Mount() Route {
	d.remount()
	d.busyID = 0
	d.Error, d.Notice, d.Warning = "", "", ""
	return RouteNone
}

// Cards joins the catalog with the loaded ratings by exact title.
func (d *Discovery) Cards() []Card {
	cards := make([]Card, len(d.catalog))
	for i, e := range d.catalog {
		cards[i] = Card{Entry: e}
		if s, ok := d.ratings[e.Title]; ok && s.Visible() {
			cards[i].Rating = &s
		}
	}
	return cards
}

// Busy reports whether the card with id has an add in flight.
func (d *Discovery) Busy(id int) bool {
	return d.busyID != 0 && d.busyID == id
}

// RatingsLoaded reports whether a ratings response has been applied.
func (d *Discovery) RatingsLoaded() bool {
	return d.ratings != nil
}

// BeginRatings returns the unauthenticated ratings fetch.
func (d *Discovery) BeginRatings() *Call[[]models.RatingSummary] {
	client := d.client
	return &Call[[]models.RatingSummary]{
		Mount: d.mount,
		Op:    OpRatings,
		run: func(ctx context.Context) ([]models.RatingSummary, error) {
			return client.Ratings(ctx)
		},
	}
}

// ApplyRatings stores the summaries. Failures are logged and leave ratings unset.
func (d *Discovery) ApplyRatings(res Result[[]models.RatingSummary]) {
	if !d.current(res.Mount) {
		return
	}
	if res.Err != nil {
		d.logger.Warn("failed to load global ratings", "error", res.Err)
		return
	}
	d.ratings = models.IndexRatings(res.Value)
}

// BeginAdd returns the call that adds the entry as PLAN_TO_WATCH.
func (d *Discovery) BeginAdd(id int) (*Call[struct{}], error) {
	entry, token, err := d.prepare(id)
	if err != nil {
		return nil, err
	}
	d.Warning = ""
	return d.create(OpAdd, entry, token, entry.NewMovie(models.PlanToWatch, nil, nil)), nil
}

// BeginMarkWatched opens the rating/review dialog for the entry with empty defaults.
func (d *Discovery) BeginMarkWatched(id int) (models.ReviewPrompt, error) {
	entry, err := d.catalog.Find(id)
	if err != nil {
		return models.ReviewPrompt{}, err
	}
	if d.Busy(id) {
		return models.ReviewPrompt{}, shared.ErrBusy
	}
	if _, err := d.session.Require(); err != nil {
		return models.ReviewPrompt{}, err
	}
	return models.ReviewPrompt{Title: entry.Title}, nil
}

// SubmitReview resolves the dialog and returns the call that adds the entry as HAVE_WATCHED.
//
// An unusable rating sets [Discovery.Warning] and the entry is saved without one.
func (d *Discovery) SubmitReview(id int, input models.ReviewInput) (*Call[struct{}], error) {
	entry, token, err := d.prepare(id)
	if err != nil {
		return nil, err
	}

	rating, review, warning := input.Resolve()
	d.Warning = warning
	return d.create(OpWatched, entry, token, entry.NewMovie(models.HaveWatched, rating, review)), nil
}

// ApplyAdd consumes an add or mark-watched result.
func (d *Discovery) ApplyAdd(res Result[struct{}]) Route {
	if d.expired(res.Err) {
		d.clearBusy(res.Key)
		return RouteAuth
	}
	if !d.current(res.Mount) {
		return RouteNone
	}
	d.clearBusy(res.Key)

	title := d.titles[res.Key]
	if res.Err != nil {
		d.logger.Error("failed to add movie", "title", title, "op", res.Op, "error", res.Err)
		fallback := addFailedMessage
		if res.Op == OpWatched {
			fallback = watchedFailedMessage
		}
		d.Error = describe(res.Err, fallback)
		return RouteNone
	}

	d.Error = ""
	if res.Op == OpWatched {
		d.Notice = fmt.Sprintf("Marked %q as watched.", title)
	} else {
		d.Notice = fmt.Sprintf("Added %q to your list.", title)
	}
	return RouteNone
}

// prepare checks the entry, the busy flag and the session, then marks the card busy.
func (d *Discovery) prepare(id int) (models.CatalogEntry, string, error) {
	entry, err := d.catalog.Find(id)
	if err != nil {
		return models.CatalogEntry{}, "", err
	}
	if d.Busy(id) {
		return models.CatalogEntry{}, "", shared.ErrBusy
	}

	s, err := d.session.Require()
	if err != nil {
		return models.CatalogEntry{}, "", err
	}

	d.busyID = id
	d.Error = ""
	d.Notice = ""
	return entry, s.Token, nil
}

func (d *Discovery) create(op Op, entry models.CatalogEntry, token string, movie models.NewMovie) *Call[struct{}] {
	key := strconv.Itoa(entry.ID)
	d.titles[key] = entry.Title

	client := d.client
	return &Call[struct{}]{
		Mount: d.mount,
		Op:    op,
		Key:   key,
		run: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, client.CreateMovie(ctx, token, movie)
		},
	}
}

// clearBusy resets the busy flag only if it still belongs to the card identified by key.
func (d *Discovery) clearBusy(key string) {
	if strconv.Itoa(d.busyID) == key {
		d.busyID = 0
	}
}
