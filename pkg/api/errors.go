package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedStatus  = errors.New("api: unexpected response status")
	ErrInvalidResponse   = errors.New("api: response is not a JSON object")
	ErrRequestFailed     = errors.New("api: request failed")
	ErrPaginationStalled = errors.New("api: next_offset did not advance")
)

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	// Body holds the start of the response body for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("api: %s %s: %s", e.Method, e.URL, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
