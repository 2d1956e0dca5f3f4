package usecase

import (
	"strings"
	"time"

	"voicecal/internal/event"
)

const (
	minEventYear  = 1900
	maxYearsAhead = 10
)

// Validate checks a draft before any remote call. The draft itself is
// never mutated, so the caller can present it back for correction.
func (uc *implUseCase) Validate(draft event.Draft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return &event.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	maxYear := uc.now().Year() + maxYearsAhead
	for _, b := range []struct {
		field string
		t     time.Time
	}{{"start", draft.Start}, {"end", draft.End}} {
		if b.t.IsZero() {
			return &event.ValidationError{Field: b.field, Reason: "must be set"}
		}
		if y := b.t.Year(); y < minEventYear || y > maxYear {
			return &event.ValidationError{Field: b.field, Reason: "year out of range"}
		}
	}

	if draft.AllDay {
		// Whole-day drafts compare calendar dates; End is the
		// user-visible inclusive last day.
		if civilDate(draft.End).Before(civilDate(draft.Start)) {
			return &event.ValidationError{Field: "end", Reason: "end date before start date"}
		}
		return nil
	}

	if !draft.Start.Before(draft.End) {
		return &event.ValidationError{Field: "end", Reason: "end must be after start"}
	}
	return nil
}

// civilDate drops the time-of-day component, keeping the location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
