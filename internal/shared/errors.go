package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrUnauthorized     = fmt.Errorf("session expired or unauthorized")
	ErrNoSessionToken   = fmt.Errorf("no session token returned from server")

	// API and service errors
	ErrAPIRequest           = fmt.Errorf("API request failed")
	ErrServiceUnavailable   = fmt.Errorf("service unavailable")
	ErrMovieNotFound        = fmt.Errorf("movie not found")
	ErrCatalogEntryNotFound = fmt.Errorf("catalog entry not found")

	// Client-side state errors
	ErrValidation = fmt.Errorf("validation failed")
	ErrCancelled  = fmt.Errorf("cancelled")
	ErrBusy       = fmt.Errorf("action already in progress")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
