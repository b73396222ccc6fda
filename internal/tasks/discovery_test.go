package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/shared"
)

func newDiscovery(f *fixture) *Discovery {
	d := NewDiscovery(f.session, f.client, models.LoadCatalog(), f.logger)
	d.Mount()
	return d
}

func cardFor(t *testing.T, d *Discovery, title string) Card {
	t.Helper()
	for _, c := range d.Cards() {
		if c.Entry.Title == title {
			return c
		}
	}
	t.Fatalf("no card for %s", title)
	return Card{}
}

func TestDiscovery(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog renders without a session", func(t *testing.T) {
		f := newFixture(t, false)
		d := newDiscovery(f)
		if len(d.Cards()) != len(models.LoadCatalog()) {
			t.Error("expected every catalog entry")
		}
		if len(f.fake.Requests()) != 0 {
			t.Error("rendering cards must not call the service")
		}
	})

	t.Run("ratings join by title", func(t *testing.T) {
		f := newFixture(t, false)
		f.fake.SetRatings(
			models.RatingSummary{Title: "Inception", AverageRating: 4.3, RoundedRating: 4, RatingCount: 10},
			models.RatingSummary{Title: "Coco", AverageRating: 3, RoundedRating: 3, RatingCount: 0},
		)
		d := newDiscovery(f)
		d.ApplyRatings(d.BeginRatings().Run(ctx))

		if !d.RatingsLoaded() {
			t.Fatal("expected ratings loaded")
		}

		c := cardFor(t, d, "Inception")
		if c.Stars() != "★★★★☆" {
			t.Errorf("expected ★★★★☆, got %q", c.Stars())
		}
		if c.Label() != "4.3/5 from 10 ratings (global)" {
			t.Errorf("unexpected label %q", c.Label())
		}

		if c := cardFor(t, d, "Coco"); c.Rating != nil || c.Stars() != "" {
			t.Error("zero-count summary must not produce a badge")
		}

		req, _ := f.fake.Last(http.MethodGet, "/ratings")
		if req.Auth != "" {
			t.Error("ratings must be fetched without a token")
		}
	})

	t.Run("ratings failure is swallowed", func(t *testing.T) {
		f := newFixture(t, true)
		f.fake.Fail(http.MethodGet, "/ratings", http.StatusInternalServerError, "boom")
		d := newDiscovery(f)
		d.ApplyRatings(d.BeginRatings().Run(ctx))

		if d.RatingsLoaded() || d.Error != "" {
			t.Errorf("expected silent failure, got loaded=%v error=%q", d.RatingsLoaded(), d.Error)
		}
		if cardFor(t, d, "Inception").Rating != nil {
			t.Error("expected no rating badge")
		}
	})

	t.Run("add requires a session", func(t *testing.T) {
		f := newFixture(t, false)
		d := newDiscovery(f)

		_, err := d.BeginAdd(1)
		if RedirectFor(err) != RouteAuth {
			t.Fatalf("expected auth redirect, got %v", err)
		}
		if d.Busy(1) {
			t.Error("card should not be busy")
		}
		if len(f.fake.Requests()) != 0 {
			t.Error("expected no requests")
		}
	})

	t.Run("add sends plan to watch", func(t *testing.T) {
		f := newFixture(t, true)
		d := newDiscovery(f)

		call, err := d.BeginAdd(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.Busy(1) {
			t.Error("expected card busy")
		}
		if _, err := d.BeginAdd(1); !errors.Is(err, shared.ErrBusy) {
			t.Errorf("expected ErrBusy for same card, got %v", err)
		}

		if route := d.ApplyAdd(call.Run(ctx)); route != RouteNone {
			t.Errorf("unexpected route %v", route)
		}
		if d.Busy(1) {
			t.Error("busy should be cleared")
		}
		if d.Notice != `Added "Inception" to your list.` {
			t.Errorf("unexpected notice %q", d.Notice)
		}

		req, _ := f.fake.Last(http.MethodPost, "/movies")
		var body map[string]any
		if err := json.Unmarshal(req.Body, &body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if body["title"] != "Inception" || body["status"] != "PLAN_TO_WATCH" {
			t.Errorf("unexpected body %v", body)
		}
		if v, ok := body["rating"]; !ok || v != nil {
			t.Errorf("expected explicit null rating, got %v", body)
		}
		if _, ok := body["imageUrl"]; !ok {
			t.Error("expected poster url")
		}
	})

	t.Run("another card replaces the busy flag", func(t *testing.T) {
		f := newFixture(t, true)
		d := newDiscovery(f)

		first, _ := d.BeginAdd(1)
		if _, err := d.BeginAdd(2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		d.ApplyAdd(first.Run(ctx))
		if !d.Busy(2) {
			t.Error("finishing card 1 must not clear card 2's busy flag")
		}
	})

	t.Run("mark watched with invalid rating", func(t *testing.T) {
		f := newFixture(t, true)
		d := newDiscovery(f)

		prompt, err := d.BeginMarkWatched(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prompt.Title != "The Matrix" || prompt.Rating != "" || prompt.Review != "" {
			t.Errorf("unexpected prompt %+v", prompt)
		}

		call, err := d.SubmitReview(5, models.ReviewInput{Rating: "7", Review: "  "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Warning != models.InvalidRatingWarning {
			t.Errorf("unexpected warning %q", d.Warning)
		}
		d.ApplyAdd(call.Run(ctx))

		req, _ := f.fake.Last(http.MethodPost, "/movies")
		var body map[string]any
		_ = json.Unmarshal(req.Body, &body)
		if body["status"] != "HAVE_WATCHED" || body["rating"] != nil || body["review"] != nil {
			t.Errorf("unexpected body %v", body)
		}
		if d.Notice != `Marked "The Matrix" as watched.` {
			t.Errorf("unexpected notice %q", d.Notice)
		}
	})

	t.Run("mark watched requires a session", func(t *testing.T) {
		f := newFixture(t, false)
		d := newDiscovery(f)
		if _, err := d.BeginMarkWatched(1); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("401 clears the session", func(t *testing.T) {
		f := newFixture(t, true)
		f.staleToken(t)
		d := newDiscovery(f)

		call, err := d.BeginAdd(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if route := d.ApplyAdd(call.Run(ctx)); route != RouteAuth {
			t.Errorf("expected auth, got %v", route)
		}
		if f.store.Len() != 0 {
			t.Error("expected session storage to be empty")
		}
		if d.Error != "" {
			t.Errorf("401 must not show a generic error, got %q", d.Error)
		}
	})

	t.Run("server error shows inline", func(t *testing.T) {
		f := newFixture(t, true)
		f.fake.Fail(http.MethodPost, "/movies", http.StatusConflict, "Already on your list")
		d := newDiscovery(f)

		call, _ := d.BeginAdd(1)
		d.ApplyAdd(call.Run(ctx))
		if d.Error != "Already on your list" {
			t.Errorf("unexpected error %q", d.Error)
		}
		if f.store.Len() != 2 {
			t.Error("session must survive a non-401 failure")
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		f := newFixture(t, true)
		d := newDiscovery(f)
		if _, err := d.BeginAdd(999); !errors.Is(err, shared.ErrCatalogEntryNotFound) {
			t.Errorf("expected ErrCatalogEntryNotFound, got %v", err)
		}
	})

	t.Run("result after unmount is ignored", func(t *testing.T) {
		f := newFixture(t, true)
		d := newDiscovery(f)

		call, _ := d.BeginAdd(1)
		d.Unmount()
		d.ApplyAdd(call.Run(ctx))
		if d.Notice != "" {
			t.Error("stale result must not update the screen")
		}
	})
}
