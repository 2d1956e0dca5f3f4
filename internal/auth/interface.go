package auth

import (
	"context"

	"golang.org/x/oauth2"

	"voicecal/internal/model"
)

// Manager owns the single credential of this installation. Other
// components obtain credentials exclusively through GetValid; none of
// them read the persisted record directly.
type Manager interface {
	// GetValid returns a currently usable credential, refreshing a
	// refreshable expired one first. It returns
	// ErrCredentialUnavailable when interactive re-authorization is
	// required.
	GetValid(ctx context.Context) (*model.Credential, error)

	// CreateInteractive runs the browser-based consent flow and
	// persists the result. Callers invoke it only after GetValid
	// reported unavailable.
	CreateInteractive(ctx context.Context) (*model.Credential, error)

	// Clear deletes the persisted record and drops the in-memory
	// credential (logout).
	Clear(ctx context.Context) error

	// TokenSource exposes the managed credential to API clients so
	// every remote call goes through GetValid.
	TokenSource(ctx context.Context) oauth2.TokenSource
}
