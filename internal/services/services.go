// package services defines interface MovieClient for the movie list service
package services

import (
	"context"

	"github.com/desertthunder/flick/internal/models"
)

// MovieClient defines the calls the client makes against the movie list service.
type MovieClient interface {
	// Register creates an account. It never returns a session.
	Register(ctx context.Context, creds models.Credentials) error

	// Login exchanges credentials for a session token.
	Login(ctx context.Context, creds models.Credentials) (string, error)

	// Ratings lists the global rating summaries. No authentication is required.
	Ratings(ctx context.Context) ([]models.RatingSummary, error)

	// Movies lists the authenticated user's records.
	Movies(ctx context.Context, token string) ([]models.MovieRecord, error)

	// CreateMovie adds a record to the user's list.
	CreateMovie(ctx context.Context, token string, movie models.NewMovie) error

	// UpdateMovie applies a partial update to one record.
	UpdateMovie(ctx context.Context, token string, id models.RecordID, update models.MovieUpdate) error

	// DeleteMovie removes one record.
	DeleteMovie(ctx context.Context, token string, id models.RecordID) error
}
