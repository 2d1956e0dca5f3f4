package model

import "time"

// EventTime is one boundary of a calendar event. An instant boundary
// carries a concrete moment in the categorization timezone; a whole-day
// boundary carries a calendar date only, held as local midnight with
// AllDay set. Whole-day end boundaries follow the remote convention of
// being end-exclusive (the day after the last included day).
type EventTime struct {
	Time   time.Time
	AllDay bool
}

// SameDate reports whether t falls on the boundary's calendar date.
// Only meaningful for whole-day boundaries.
func (e EventTime) SameDate(t time.Time) bool {
	y1, m1, d1 := e.Time.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CalendarEvent is a remote event. The remote service is authoritative;
// instances are a read-through snapshot rebuilt on every load.
type CalendarEvent struct {
	ID          string
	Title       string
	Location    string
	Description string
	Start       EventTime
	End         EventTime
	Cancelled   bool
}

// CalendarInfo is the metadata of a remote calendar.
type CalendarInfo struct {
	ID      string
	Summary string
	// Timezone is the calendar's own default zone as reported by the
	// service. Display categorization uses the client's configured zone,
	// not this one.
	Timezone string
}
