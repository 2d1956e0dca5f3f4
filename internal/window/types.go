package window

import "voicecal/internal/model"

// Bucket identifies one of the three disjoint event sequences of a
// resolved window.
type Bucket string

const (
	BucketPast     Bucket = "past"
	BucketToday    Bucket = "today"
	BucketUpcoming Bucket = "upcoming"
)

// Result is the derived past/today/upcoming partition of one
// categorization pass. Each bucket is ordered by start boundary
// ascending and cancelled events are excluded. Malformed events are
// dropped from the buckets and reported here instead.
type Result struct {
	Past     []model.CalendarEvent
	Today    []model.CalendarEvent
	Upcoming []model.CalendarEvent

	Malformed []MalformedEventError
}

// Bucket returns the named sequence.
func (r *Result) Bucket(b Bucket) []model.CalendarEvent {
	switch b {
	case BucketPast:
		return r.Past
	case BucketToday:
		return r.Today
	case BucketUpcoming:
		return r.Upcoming
	}
	return nil
}

// Size returns the number of categorized events across all buckets.
func (r *Result) Size() int {
	return len(r.Past) + len(r.Today) + len(r.Upcoming)
}
