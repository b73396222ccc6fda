package testing

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/flick/internal/models"
)

// Request is a call recorded by [FakeAPI].
type Request struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

type failure struct {
	status  int
	message string
}

// FakeAPI emulates the movie list service over httptest.
type FakeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	token     string
	omitToken bool
	users     map[string]string
	movies    []models.MovieRecord
	ratings   []models.RatingSummary
	nextID    int
	requests  []Request
	failures  map[string]failure
}

// NewFakeAPI starts a fake service that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		token:    "test-token",
		users:    map[string]string{"ada": "lovelace"},
		failures: make(map[string]failure),
		nextID:   100,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake service.
func (f *FakeAPI) URL() string { return f.Server.URL }

// Token returns the session token issued on login.
func (f *FakeAPI) Token() string { return f.token }

// OmitToken makes login succeed without a sessionToken field.
func (f *FakeAPI) OmitToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.omitToken = true
}

// SetMovies replaces the stored movie list.
func (f *FakeAPI) SetMovies(movies ...models.MovieRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movies = append([]models.MovieRecord(nil), movies...)
}

// Movies returns a copy of the stored movie list.
func (f *FakeAPI) Movies() []models.MovieRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MovieRecord(nil), f.movies...)
}

// SetRatings replaces the global ratings.
func (f *FakeAPI) SetRatings(ratings ...models.RatingSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratings = append([]models.RatingSummary(nil), ratings...)
}

// Fail makes every call to method+path answer with status and a JSON message.
func (f *FakeAPI) Fail(method, path string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = failure{status: status, message: message}
}

// Requests returns every recorded call in order.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Count returns how many calls matched method and path.
func (f *FakeAPI) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent call matching method and path.
func (f *FakeAPI) Last(method, path string) (Request, bool) {
	reqs := f.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Request{}, false
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})

	if fail, ok := f.failures[r.Method+" "+r.URL.Path]; ok {
		writeJSON(w, fail.status, map[string]string{"message": fail.message})
		return
	}

	switch {
	case r.URL.Path == "/auth/register" && r.Method == http.MethodPost:
		f.register(w, body)
	case r.URL.Path == "/auth/login" && r.Method == http.MethodPost:
		f.login(w, body)
	case r.URL.Path == "/ratings" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, f.ratings)
	case r.URL.Path == "/movies":
		if r.Header.Get("Authorization") != "Bearer "+f.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		f.movie(w, r, body)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	}
}

func (f *FakeAPI) register(w http.ResponseWriter, body []byte) {
	var creds models.Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}
	if _, exists := f.users[creds.Username]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Username already taken"})
		return
	}
	f.users[creds.Username] = creds.Password
	writeJSON(w, http.StatusCreated, map[string]string{"message": "created"})
}

func (f *FakeAPI) login(w http.ResponseWriter, body []byte) {
	var creds models.Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}
	if pw, ok := f.users[creds.Username]; !ok || pw != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
		return
	}
	if f.omitToken {
		writeJSON(w, http.StatusOK, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{SessionToken: f.token})
}

func (f *FakeAPI) movie(w http.ResponseWriter, r *http.Request, body []byte) {
	id := models.RecordID(r.URL.Query().Get("id"))

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, f.movies)
	case http.MethodPost:
		var m models.NewMovie
		if err := json.Unmarshal(body, &m); err != nil || strings.TrimSpace(m.Title) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Title is required"})
			return
		}
		f.nextID++
		f.movies = append(f.movies, models.MovieRecord{
			ID:       models.RecordID(strconv.Itoa(f.nextID)),
			Title:    m.Title,
			Status:   m.Status,
			Rating:   m.Rating,
			Review:   m.Review,
			ImageURL: m.ImageURL,
		})
		writeJSON(w, http.StatusCreated, f.movies[len(f.movies)-1])
	case http.MethodPut:
		idx := f.indexOf(id)
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Movie not found"})
			return
		}
		var patch map[string]json.RawMessage
		if err := json.Unmarshal(body, &patch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
			return
		}
		m := &f.movies[idx]
		if raw, ok := patch["status"]; ok {
			_ = json.Unmarshal(raw, &m.Status)
		}
		if raw, ok := patch["rating"]; ok {
			m.Rating = nil
			_ = json.Unmarshal(raw, &m.Rating)
		}
		if raw, ok := patch["review"]; ok {
			m.Review = nil
			_ = json.Unmarshal(raw, &m.Review)
		}
		writeJSON(w, http.StatusOK, *m)
	case http.MethodDelete:
		idx := f.indexOf(id)
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Movie not found"})
			return
		}
		f.movies = append(f.movies[:idx], f.movies[idx+1:]...)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
	}
}

func (f *FakeAPI) indexOf(id models.RecordID) int {
	for i, m := range f.movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
