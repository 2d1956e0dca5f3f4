package auth

import (
	"errors"
	"fmt"
)

// ErrCredentialUnavailable means no usable credential can be produced
// without interactive re-authorization. All remote operations fail fast
// with this error.
var ErrCredentialUnavailable = errors.New("no usable credential")

// RefreshErrorKind distinguishes why a refresh exchange failed.
type RefreshErrorKind string

const (
	// RefreshInvalidGrant: the refresh token was revoked; interactive
	// re-authorization is required.
	RefreshInvalidGrant RefreshErrorKind = "invalid_grant"
	// RefreshTransient: network or timeout failure; safe to retry later.
	RefreshTransient RefreshErrorKind = "transient"
	// RefreshUnknown: anything else.
	RefreshUnknown RefreshErrorKind = "unknown"
)

// RefreshError reports a failed refresh exchange.
type RefreshError struct {
	Kind RefreshErrorKind
	Err  error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("credential refresh failed (%s): %v", e.Kind, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
