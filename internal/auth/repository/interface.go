package repository

import "voicecal/internal/model"

// TokenStore persists the single credential record. The lifecycle
// manager is its only writer.
type TokenStore interface {
	// Load reads the persisted record, returning model.ErrNoRecord when
	// none exists.
	Load() (*model.Credential, error)
	// Save replaces the persisted record.
	Save(cred *model.Credential) error
	// Delete removes the persisted record; deleting a missing record is
	// not an error.
	Delete() error
}
