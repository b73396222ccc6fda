package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/flick/internal/shared"
)

// APIError is a non-2xx response other than an authorization failure on a bearer call.
type APIError struct {
	StatusCode int
	// Message is the server-provided message, or empty when the body carried none.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: status %d", shared.ErrAPIRequest, e.StatusCode)
	}
	return fmt.Sprintf("%v: status %d: %s", shared.ErrAPIRequest, e.StatusCode, e.Message)
}

// Is matches [shared.ErrAPIRequest].
func (e *APIError) Is(target error) bool {
	return target == shared.ErrAPIRequest
}

// newAPIError builds an [APIError], extracting a message from a JSON body's
// "message", "error" or "detail" field.
func newAPIError(resp *APIResponse) *APIError {
	e := &APIError{StatusCode: resp.StatusCode}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return e
	}

	for _, field := range []string{"message", "error", "detail"} {
		raw, ok := body[field]
		if !ok {
			continue
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil && strings.TrimSpace(msg) != "" {
			e.Message = strings.TrimSpace(msg)
			return e
		}
	}
	return e
}
