package event

import (
	"context"
	"time"

	"voicecal/internal/model"
	"voicecal/internal/window"
)

// Window is the categorized past/today/upcoming view consumers render.
type Window = window.Result

// UseCase is the mutation façade over the remote calendar service plus
// the window loader. Every remote operation obtains its credential
// through the lifecycle manager and fails fast when none is usable.
type UseCase interface {
	// Login verifies access to the calendar and caches its metadata.
	Login(ctx context.Context, calendarID string) (*model.CalendarInfo, error)
	// Logout clears the credential and drops cached metadata.
	Logout(ctx context.Context) error

	// LoadWindow fetches the three disjoint ranges around refDate and
	// merges their categorizations into one window.
	LoadWindow(ctx context.Context, refDate time.Time) (*Window, error)

	// Validate checks a draft without touching the remote service.
	Validate(draft Draft) error

	Create(ctx context.Context, draft Draft) (*model.CalendarEvent, error)
	Update(ctx context.Context, id string, draft Draft) (*model.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
}
