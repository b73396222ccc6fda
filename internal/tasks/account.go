package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/shared"
)

const loadFailedMessage = "Could not load your movies."

var mutationFallback = map[Op]string{
	OpCreate: "Could not add the movie.",
	OpStatus: "Could not update the status.",
	OpReview: "Could not save your review.",
	OpDelete: "Could not delete the movie.",
}

// errRefetch marks a failure of the reload that follows a successful mutation.
type errRefetch struct{ err error }

func (e errRefetch) Error() string { return "reload after update failed: " + e.err.Error() }
func (e errRefetch) Unwrap() error { return e.err }

// Account is the user's list screen. Every mutation is followed by a full reload of the list.
type Account struct {
	screen

	Username string
	Movies   []models.MovieRecord
	Filter   models.StatusFilter
	Search   string
	Loading  bool
	Pending  bool

	Error   string
	Notice  string
	Warning string
}

// NewAccount creates an [Account] showing every status.
func NewAccount(sess *session.Context, client services.MovieClient, logger *log.Logger) *Account {
	return &Account{
		screen: newScreen(sess, client, logger),
		Filter: models.FilterAll,
		Movies: []models.MovieRecord{},
	}
}

// Mount guards the screen. Without a session it reports [RouteAuth] and renders nothing protected.
func (a *Account) Mount() Route {
	s, ok := a.session.Load()
	if !ok {
		a.Unmount()
		a.Movies = []models.MovieRecord{}
		return RouteAuth
	}

	a.remount()
	a.Username = s.Username
	a.Loading, a.Pending = false, false
	a.Error, a.Notice, a.Warning = "", "", ""
	return RouteNone
}

// Visible applies the status and search filters to the loaded list.
func (a *Account) Visible() []models.MovieRecord {
	return models.FilterMovies(a.Movies, a.Filter, a.Search)
}

// CycleFilter moves to the next status filter.
func (a *Account) CycleFilter() {
	a.Filter = a.Filter.Next()
}

// Find returns the loaded record with id.
func (a *Account) Find(id models.RecordID) (models.MovieRecord, error) {
	for _, m := range a.Movies {
		if m.ID == id {
			return m, nil
		}
	}
	return models.MovieRecord{}, fmt.Errorf("%w: id %s", shared.ErrMovieNotFound, id)
}

// BeginFetch returns the call that loads the user's list.
func (a *Account) BeginFetch() (*Call[[]models.MovieRecord], error) {
	s, err := a.session.Require()
	if err != nil {
		return nil, err
	}
	a.Loading = true

	client, token := a.client, s.Token
	return &Call[[]models.MovieRecord]{
		Mount: a.mount,
		Op:    OpFetch,
		run: func(ctx context.Context) ([]models.MovieRecord, error) {
			return client.Movies(ctx, token)
		},
	}, nil
}

// ApplyFetch consumes a list result.
func (a *Account) ApplyFetch(res Result[[]models.MovieRecord]) Route {
	if a.expired(res.Err) {
		return RouteAuth
	}
	if !a.current(res.Mount) {
		return RouteNone
	}
	a.Loading = false

	if res.Err != nil {
		a.logger.Error("failed to load movies", "error", res.Err)
		a.Error = describe(res.Err, loadFailedMessage)
		return RouteNone
	}
	a.Error = ""
	a.Movies = res.Value
	return RouteNone
}

// BeginCreate validates the form and returns the create call.
//
// A watched movie without a rating is rejected here and never sent.
func (a *Account) BeginCreate(form models.MovieForm) (*Call[[]models.MovieRecord], error) {
	movie, err := form.Validate()
	if err != nil {
		a.Error = err.Error()
		return nil, err
	}

	return a.mutate(OpCreate, "", func(ctx context.Context, client services.MovieClient, token string) error {
		return client.CreateMovie(ctx, token, movie)
	})
}

// BeginStatusUpdate returns the call that changes only the status of a record.
func (a *Account) BeginStatusUpdate(id models.RecordID, status models.Status) (*Call[[]models.MovieRecord], error) {
	if _, err := a.Find(id); err != nil {
		return nil, err
	}

	update := models.StatusUpdate(status)
	return a.mutate(OpStatus, id.String(), func(ctx context.Context, client services.MovieClient, token string) error {
		return client.UpdateMovie(ctx, token, id, update)
	})
}

// BeginReview opens the rating/review dialog prefilled from the record.
func (a *Account) BeginReview(id models.RecordID) (models.ReviewPrompt, error) {
	m, err := a.Find(id)
	if err != nil {
		return models.ReviewPrompt{}, err
	}
	return models.PromptFor(m), nil
}

// SubmitReview resolves the dialog and returns the call that marks the record watched.
//
// The poster is never resent. An unusable rating sets [Account.Warning] and clears the rating.
func (a *Account) SubmitReview(id models.RecordID, input models.ReviewInput) (*Call[[]models.MovieRecord], error) {
	if _, err := a.Find(id); err != nil {
		return nil, err
	}

	rating, review, warning := input.Resolve()
	update := models.ReviewUpdate(rating, review)

	call, err := a.mutate(OpReview, id.String(), func(ctx context.Context, client services.MovieClient, token string) error {
		return client.UpdateMovie(ctx, token, id, update)
	})
	if err == nil {
		a.Warning = warning
	}
	return call, err
}

// BeginDelete returns the delete call. An unconfirmed delete returns [shared.ErrCancelled] and sends nothing.
func (a *Account) BeginDelete(id models.RecordID, confirmed bool) (*Call[[]models.MovieRecord], error) {
	if _, err := a.Find(id); err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, shared.ErrCancelled
	}

	return a.mutate(OpDelete, id.String(), func(ctx context.Context, client services.MovieClient, token string) error {
		return client.DeleteMovie(ctx, token, id)
	})
}

// ApplyMutation consumes the result of a mutation and its reload. The reloaded list replaces the
// current one; nothing is merged locally.
func (a *Account) ApplyMutation(res Result[[]models.MovieRecord]) Route {
	if a.expired(res.Err) {
		return RouteAuth
	}
	if !a.current(res.Mount) {
		return RouteNone
	}
	a.Pending = false

	if res.Err != nil {
		a.logger.Error("update failed", "op", res.Op, "id", res.Key, "error", res.Err)

		var refetch errRefetch
		if errors.As(res.Err, &refetch) {
			a.Error = describe(refetch.err, loadFailedMessage)
		} else {
			a.Error = describe(res.Err, mutationFallback[res.Op])
		}
		return RouteNone
	}

	a.Error = ""
	a.Movies = res.Value
	a.Notice = mutationNotice(res.Op)
	return RouteNone
}

func (a *Account) mutate(
	op Op,
	key string,
	fn func(ctx context.Context, client services.MovieClient, token string) error,
) (*Call[[]models.MovieRecord], error) {
	s, err := a.session.Require()
	if err != nil {
		return nil, err
	}

	a.Pending = true
	a.Error, a.Notice, a.Warning = "", "", ""

	client, token := a.client, s.Token
	return &Call[[]models.MovieRecord]{
		Mount: a.mount,
		Op:    op,
		Key:   key,
		run: func(ctx context.Context) ([]models.MovieRecord, error) {
			if err := fn(ctx, client, token); err != nil {
				return nil, err
			}
			movies, err := client.Movies(ctx, token)
			if err != nil {
				return nil, errRefetch{err}
			}
			return movies, nil
		},
	}, nil
}

func mutationNotice(op Op) string {
	switch op {
	case OpCreate:
		return "Movie added."
	case OpStatus:
		return "Status updated."
	case OpReview:
		return "Review saved."
	case OpDelete:
		return "Movie deleted."
	}
	return ""
}
