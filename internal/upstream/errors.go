package upstream

import (
	"errors"
	"fmt"
)

// ErrMalformedEvent is matched by every ParseError.
var ErrMalformedEvent = errors.New("malformed stream event")

// ErrProviderEvent is wrapped when the provider reports an error inside the
// event stream after a successful status.
var ErrProviderEvent = errors.New("provider reported an error")

// Error is returned when the provider answers with a non-200 status.
type Error struct {
	StatusCode int
	Status     string // status text without the code, e.g. "Unauthorized"
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream API has encountered an error with a status code of %d %s: %s",
		e.StatusCode, e.Status, e.Body)
}

// ParseError is the terminal error of a Stream whose event payload could
// not be decoded or did not carry the expected fields.
type ParseError struct {
	Data string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedEvent, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformedEvent as matching any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedEvent
}
