package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/shared"
)

var _ MovieClient = (*MovieService)(nil)

// MovieService implements [MovieClient] over an [APIService].
type MovieService struct {
	api *APIService
}

// NewMovieService creates a [MovieService] that sends requests through api.
func NewMovieService(api *APIService) *MovieService {
	return &MovieService{api: api}
}

// Register creates an account. Any non-2xx response, including 401, is an [APIError].
func (s *MovieService) Register(ctx context.Context, creds models.Credentials) error {
	resp, err := s.send(ctx, http.MethodPost, "/auth/register", "", creds)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return newAPIError(resp)
	}
	return nil
}

// Login exchanges credentials for a session token.
//
// A 2xx body without a sessionToken yields [shared.ErrNoSessionToken].
func (s *MovieService) Login(ctx context.Context, creds models.Credentials) (string, error) {
	resp, err := s.send(ctx, http.MethodPost, "/auth/login", "", creds)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", newAPIError(resp)
	}

	var body models.LoginResponse
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &body); err != nil {
			return "", fmt.Errorf("%w: failed to decode login response: %w", shared.ErrAPIRequest, err)
		}
	}
	if body.SessionToken == "" {
		return "", shared.ErrNoSessionToken
	}
	return body.SessionToken, nil
}

// Ratings lists global rating summaries.
func (s *MovieService) Ratings(ctx context.Context) ([]models.RatingSummary, error) {
	resp, err := s.send(ctx, http.MethodGet, "/ratings", "", nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, newAPIError(resp)
	}

	ratings := []models.RatingSummary{}
	if err := decode(resp, &ratings); err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []models.RatingSummary{}
	}
	return ratings, nil
}

// Movies lists the user's records.
func (s *MovieService) Movies(ctx context.Context, token string) ([]models.MovieRecord, error) {
	resp, err := s.send(ctx, http.MethodGet, "/movies", token, nil)
	if err != nil {
		return nil, err
	}
	if err := checkAuthed(resp); err != nil {
		return nil, err
	}

	movies := []models.MovieRecord{}
	if err := decode(resp, &movies); err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.MovieRecord{}
	}
	return movies, nil
}

// CreateMovie adds a record.
func (s *MovieService) CreateMovie(ctx context.Context, token string, movie models.NewMovie) error {
	resp, err := s.send(ctx, http.MethodPost, "/movies", token, movie)
	if err != nil {
		return err
	}
	return checkAuthed(resp)
}

// UpdateMovie applies update to the record with id.
func (s *MovieService) UpdateMovie(ctx context.Context, token string, id models.RecordID, update models.MovieUpdate) error {
	resp, err := s.send(ctx, http.MethodPut, moviePath(id), token, update)
	if err != nil {
		return err
	}
	return checkAuthed(resp)
}

// DeleteMovie removes the record with id. Any 2xx, including 204, is success.
func (s *MovieService) DeleteMovie(ctx context.Context, token string, id models.RecordID) error {
	resp, err := s.send(ctx, http.MethodDelete, moviePath(id), token, nil)
	if err != nil {
		return err
	}
	return checkAuthed(resp)
}

func (s *MovieService) send(ctx context.Context, method, path, token string, body any) (*APIResponse, error) {
	req := Request{Method: method, Path: path, Token: token}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %w", shared.ErrAPIRequest, err)
		}
		req.Body = data
	}
	return s.api.Do(ctx, req)
}

// checkAuthed maps a bearer call's status: 401 is [shared.ErrUnauthorized], other non-2xx an [APIError].
func checkAuthed(resp *APIResponse) error {
	switch {
	case resp.OK():
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", shared.ErrUnauthorized, newAPIError(resp))
	default:
		return newAPIError(resp)
	}
}

func decode(resp *APIResponse, v any) error {
	if len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
	}
	return nil
}

func moviePath(id models.RecordID) string {
	return "/movies?id=" + url.QueryEscape(id.String())
}
