package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrServiceUnavailable indicates the call could not complete or returned a non-success status
	ErrServiceUnavailable = errors.New("movie catalog service unavailable")
	// ErrMalformedResponse indicates the payload could not be parsed into the expected shape
	ErrMalformedResponse = errors.New("malformed response from movie catalog")
	// ErrInvalidArgument indicates a query was rejected before reaching the service
	ErrInvalidArgument = errors.New("invalid argument")
)

// APIError represents a non-success HTTP response from TMDb.
// It unwraps to ErrServiceUnavailable.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrServiceUnavailable
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates a missing or invalid API key
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
