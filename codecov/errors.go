package codecov

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid codecov configuration")
	// ErrMissingIdentifier indicates a wrapper lacks a path identifier
	ErrMissingIdentifier = errors.New("missing identifier")
	// ErrStopWalk can be returned by a Walk callback to end the walk early
	ErrStopWalk = errors.New("stop walk")
)

// APIError represents a non-2xx response from the Codecov API.
type APIError struct {
	StatusCode int
	// Content is the decoded error body, or the raw text when it is not JSON.
	Content any
	Body    []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("codecov API error: status %d: %s", e.StatusCode, e.Message())
}

// Message extracts a human readable message from the error body.
func (e *APIError) Message() string {
	if m, ok := e.Content.(map[string]any); ok {
		for _, key := range []string{"detail", "error", "message"} {
			if s, ok := m[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if len(e.Body) == 0 {
		return http.StatusText(e.StatusCode)
	}
	return string(e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

func missing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingIdentifier, name)
}
