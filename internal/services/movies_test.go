package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/shared"
	tu "github.com/desertthunder/flick/internal/testing"
)

func newMovieService(t *testing.T) (*MovieService, *tu.FakeAPI) {
	t.Helper()
	fake := tu.NewFakeAPI(t)
	return NewMovieService(NewAPIService(fake.URL(), nil)), fake
}

func TestMovieService(t *testing.T) {
	ctx := context.Background()

	t.Run("Login", func(t *testing.T) {
		t.Run("Returns Token", func(t *testing.T) {
			svc, fake := newMovieService(t)
			token, err := svc.Login(ctx, models.Credentials{Username: "ada", Password: "lovelace"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != fake.Token() {
				t.Errorf("expected %s, got %s", fake.Token(), token)
			}

			req, _ := fake.Last(http.MethodPost, "/auth/login")
			if req.Auth != "" {
				t.Error("login must not send a bearer token")
			}
		})

		t.Run("Missing Token", func(t *testing.T) {
			svc, fake := newMovieService(t)
			fake.OmitToken()

			_, err := svc.Login(ctx, models.Credentials{Username: "ada", Password: "lovelace"})
			if !errors.Is(err, shared.ErrNoSessionToken) {
				t.Fatalf("expected ErrNoSessionToken, got %v", err)
			}
		})

		t.Run("Bad Credentials Are Not Unauthorized", func(t *testing.T) {
			svc, _ := newMovieService(t)
			_, err := svc.Login(ctx, models.Credentials{Username: "ada", Password: "wrong"})

			if errors.Is(err, shared.ErrUnauthorized) {
				t.Fatal("login 401 must not be treated as session expiry")
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Invalid username or password" {
				t.Errorf("unexpected APIError: %+v", apiErr)
			}
		})

		t.Run("Malformed Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			svc := NewMovieService(NewAPIService(server.URL, nil))
			_, err := svc.Login(ctx, models.Credentials{Username: "a", Password: "b"})
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("Register", func(t *testing.T) {
		svc, fake := newMovieService(t)
		if err := svc.Register(ctx, models.Credentials{Username: "grace", Password: "hopper"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		err := svc.Register(ctx, models.Credentials{Username: "grace", Password: "hopper"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Message != "Username already taken" {
			t.Fatalf("expected conflict APIError, got %v", err)
		}

		req, _ := fake.Last(http.MethodPost, "/auth/register")
		var body map[string]string
		if err := json.Unmarshal(req.Body, &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["username"] != "grace" || body["password"] != "hopper" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("Ratings", func(t *testing.T) {
		svc, fake := newMovieService(t)
		fake.SetRatings(models.RatingSummary{Title: "Inception", AverageRating: 4.3, RoundedRating: 4, RatingCount: 10})

		ratings, err := svc.Ratings(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(ratings) != 1 || ratings[0].RatingCount != 10 {
			t.Errorf("unexpected ratings: %v", ratings)
		}

		fake.Fail(http.MethodGet, "/ratings", http.StatusInternalServerError, "down")
		if _, err := svc.Ratings(ctx); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Movies", func(t *testing.T) {
		t.Run("Lists With Bearer", func(t *testing.T) {
			svc, fake := newMovieService(t)
			fake.SetMovies(models.MovieRecord{ID: "1", Title: "A", Status: models.PlanToWatch})

			movies, err := svc.Movies(ctx, fake.Token())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(movies) != 1 || movies[0].Title != "A" {
				t.Errorf("unexpected movies: %v", movies)
			}
		})

		t.Run("Empty List Is Not Nil", func(t *testing.T) {
			svc, fake := newMovieService(t)
			movies, err := svc.Movies(ctx, fake.Token())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if movies == nil {
				t.Error("expected non-nil slice")
			}
		})

		t.Run("401 Is Unauthorized", func(t *testing.T) {
			svc, _ := newMovieService(t)
			_, err := svc.Movies(ctx, "stale")
			if !errors.Is(err, shared.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				t.Error("401 should not surface as an APIError")
			}
		})
	})

	t.Run("CreateMovie", func(t *testing.T) {
		svc, fake := newMovieService(t)
		movie := models.CatalogEntry{Title: "Coco", ImageURL: "http://img"}.NewMovie(models.PlanToWatch, nil, nil)

		if err := svc.CreateMovie(ctx, fake.Token(), movie); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		req, _ := fake.Last(http.MethodPost, "/movies")
		want := `{"title":"Coco","status":"PLAN_TO_WATCH","rating":null,"review":null,"imageUrl":"http://img"}`
		if string(req.Body) != want {
			t.Errorf("expected body %s, got %s", want, req.Body)
		}
		if req.Auth != "Bearer "+fake.Token() {
			t.Errorf("expected bearer header, got %q", req.Auth)
		}
	})

	t.Run("UpdateMovie", func(t *testing.T) {
		svc, fake := newMovieService(t)
		fake.SetMovies(models.MovieRecord{ID: "a b", Title: "A", Status: models.PlanToWatch, ImageURL: models.StringPtr("http://img")})

		if err := svc.UpdateMovie(ctx, fake.Token(), "a b", models.StatusUpdate(models.HaveWatched)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		req, _ := fake.Last(http.MethodPut, "/movies")
		if req.Query != "id=a+b" {
			t.Errorf("expected escaped id query, got %q", req.Query)
		}
		if string(req.Body) != `{"status":"HAVE_WATCHED"}` {
			t.Errorf("unexpected body: %s", req.Body)
		}

		if err := svc.UpdateMovie(ctx, fake.Token(), "missing", models.StatusUpdate(models.HaveWatched)); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest for missing record, got %v", err)
		}
	})

	t.Run("DeleteMovie", func(t *testing.T) {
		svc, fake := newMovieService(t)
		fake.SetMovies(models.MovieRecord{ID: "1", Title: "A", Status: models.PlanToWatch})

		if err := svc.DeleteMovie(ctx, fake.Token(), "1"); err != nil {
			t.Fatalf("expected 204 to be success, got %v", err)
		}
		if len(fake.Movies()) != 0 {
			t.Error("expected record to be removed")
		}

		if err := svc.DeleteMovie(ctx, "stale", "1"); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})
}
