package scoring

import (
	"fmt"
	"strings"
)

// Error represents a failed call to the scoring service: transport failure,
// non-2xx status, or a response body missing a required field.
type Error struct {
	Endpoint   string // Endpoint path, e.g. "/match_resume_to_job"
	StatusCode int    // HTTP status code if a response was received
	Message    string // Human-readable message
	Cause      error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("scoring %s", e.Endpoint))
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(endpoint string, statusCode int, message string, cause error) *Error {
	return &Error{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}
