package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a non-2xx response from the backend.
type Error struct {
	StatusCode int
	StatusText string
	Detail     string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("API request failed (%d %s)", e.StatusCode, e.StatusText)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Temporary reports whether retrying the same request may succeed.
func (e *Error) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// DecodeError indicates a 2xx JSON response that did not match the expected shape.
type DecodeError struct {
	Method string
	URL    string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response for %s %s: %v", e.Method, e.URL, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
