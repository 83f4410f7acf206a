package deploy

import (
	"errors"
	"fmt"
)

var (
	// ErrHTMLNotFound is returned when none of the candidate HTML paths exist.
	ErrHTMLNotFound = errors.New("html file not found")
	// ErrMissingToken is returned when a target needs a token and none was given.
	ErrMissingToken = errors.New("access token required")
	// ErrCancelled is returned when the user picks "exit" from the menu.
	ErrCancelled = errors.New("cancelled")
	// ErrUnknownTarget is returned for menu input that names no target.
	ErrUnknownTarget = errors.New("unknown upload target")
	// ErrUnavailable is returned by a hook whose facility is missing on this system.
	ErrUnavailable = errors.New("not available on this system")
)

// APIError describes a failed call to a hosting API: either a transport
// error (Err set, Status 0) or an unexpected status.
type APIError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
