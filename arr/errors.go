package arr

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid arr configuration")
	// ErrUnknownVariant indicates an unsupported arr software name
	ErrUnknownVariant = errors.New("unknown arr software")
)

// APIError is returned when the server answers with an unexpected status code.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("arr API error: %s %s: status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
