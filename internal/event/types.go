package event

import "time"

// Draft is the transient, UI-owned value of an unsaved event form. It
// is validated before translation to the wire form and never persisted
// directly. For an all-day draft only the date components of Start and
// End matter, and End is the user-visible inclusive end date; the
// exclusive wire convention is applied during translation, not here.
type Draft struct {
	Name     string
	Location string
	Remarks  string
	Start    time.Time
	End      time.Time
	AllDay   bool
}

// UserEndDate converts a whole-day event's end-exclusive wire end into
// the inclusive end date shown to the user, e.g. when an existing
// event is loaded back into an edit form.
func UserEndDate(wireEnd time.Time) time.Time {
	return wireEnd.AddDate(0, 0, -1)
}
