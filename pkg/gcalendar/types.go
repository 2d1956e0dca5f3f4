package gcalendar

import "time"

// EventTime is one raw boundary of a Google Calendar event. Exactly one
// of Date (whole-day, "2006-01-02") or DateTime (RFC3339) is set for a
// well-formed event; callers that need instants must parse these
// themselves so the timezone interpretation stays in one place.
type EventTime struct {
	Date     string
	DateTime string
	TimeZone string
}

// Zero reports whether the boundary carries no value at all.
func (t EventTime) Zero() bool {
	return t.Date == "" && t.DateTime == ""
}

// Event is the wire representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Location    string
	Description string
	Status      string // "confirmed", "tentative" or "cancelled"
	HtmlLink    string
	Start       EventTime
	End         EventTime
}

// Calendar is the metadata of a single calendar.
type Calendar struct {
	ID       string
	Summary  string
	TimeZone string
}

// ListEventsRequest is the input for listing Google Calendar events.
// The [TimeMin, TimeMax) range is half-open; the service returns every
// event whose interval overlaps it, including whole-day events that
// start before TimeMin.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
}
