package window

import (
	"errors"
	"fmt"
)

// ErrMalformedEvent marks an event whose boundaries could not be
// interpreted; matched with errors.Is.
var ErrMalformedEvent = errors.New("malformed event boundary")

// MalformedEventError reports a single event that was dropped from the
// categorization output: either its boundary variants do not match
// (one whole-day, one instant) or a boundary failed to parse.
type MalformedEventError struct {
	EventID string
	Title   string
	Reason  string
}

func (e MalformedEventError) Error() string {
	return fmt.Sprintf("event %q (%s): %s", e.Title, e.EventID, e.Reason)
}

func (e MalformedEventError) Unwrap() error { return ErrMalformedEvent }
