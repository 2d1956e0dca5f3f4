package event

import (
	"errors"
	"fmt"
)

// ErrRemoteCall marks a create/update/delete/list call that failed
// after a usable credential was obtained. Local state is unchanged.
var ErrRemoteCall = errors.New("remote calendar call failed")

// ErrValidation marks a rejected draft; matched with errors.Is.
var ErrValidation = errors.New("invalid event draft")

// ValidationError reports the first field that failed draft validation.
// The caller keeps the draft so the user can correct it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
