package transport

import (
	"fmt"
	"net/http"

	clierrors "github.com/nfa-dashboard/go-dashboard-client/internal/errors"
)

// APIError is a structured failure response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto the client error taxonomy so callers can
// use errors.Is against the sentinels.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return clierrors.ErrUnauthenticated
	case http.StatusForbidden:
		return clierrors.ErrForbidden
	case http.StatusNotFound:
		return clierrors.ErrNotFound
	default:
		return nil
	}
}
