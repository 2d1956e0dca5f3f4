package window

import (
	"fmt"
	"sort"
	"time"

	"voicecal/internal/model"
	"voicecal/pkg/gcalendar"
)

const dateLayout = "2006-01-02"

// Resolver partitions raw remote events into past/today/upcoming. It
// holds the one IANA zone used for every boundary conversion of a pass;
// mixing system-local and fixed-offset interpretations across events in
// a single pass is exactly the bug this guards against.
type Resolver struct {
	loc *time.Location
}

// NewResolver creates a resolver anchored to the given IANA timezone
// string, e.g. "Asia/Tokyo".
func NewResolver(timezone string) (*Resolver, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Resolver{loc: loc}, nil
}

// Location returns the resolver's zone.
func (r *Resolver) Location() *time.Location { return r.loc }

// DayBounds returns the local-midnight instants [start, end) of the
// calendar day containing ref. The end bound is computed through
// time.Date so DST transitions keep it on the next civil midnight.
func (r *Resolver) DayBounds(ref time.Time) (time.Time, time.Time) {
	y, m, d := ref.In(r.loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, r.loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, r.loc)
	return start, end
}

// Categorize partitions one fetched event list against the reference
// date. Bucket assignment is a function of the reference date and the
// event alone, never of wall-clock now, so re-running the same fetch
// yields the same partition. Cancelled events are discarded; events
// with mismatched or unparsable boundaries are dropped and reported in
// Result.Malformed without aborting the pass.
//
// Callers fetching several disjoint ranges run Categorize once per
// fetch and combine with Merge.
func (r *Resolver) Categorize(events []gcalendar.Event, refDate time.Time) Result {
	todayStart, todayEnd := r.DayBounds(refDate)

	var res Result
	for _, raw := range events {
		if raw.Status == "cancelled" {
			continue
		}

		ev, err := r.Convert(raw)
		if err != nil {
			res.Malformed = append(res.Malformed, MalformedEventError{
				EventID: raw.ID,
				Title:   raw.Summary,
				Reason:  err.Error(),
			})
			continue
		}

		switch r.bucketOf(ev, todayStart, todayEnd) {
		case BucketPast:
			res.Past = append(res.Past, ev)
		case BucketToday:
			res.Today = append(res.Today, ev)
		case BucketUpcoming:
			res.Upcoming = append(res.Upcoming, ev)
		}
	}

	sortBucket(res.Past)
	sortBucket(res.Today)
	sortBucket(res.Upcoming)
	return res
}

// bucketOf assigns exactly one bucket per event.
//
// Whole-day events compare their end-exclusive [startDate, endDate)
// civil interval against the reference date: containing it means today,
// starting after it means upcoming, otherwise past.
//
// Instant events compare their [start, end) interval against the local
// [todayStart, todayEnd): overlap means today, start >= todayEnd means
// upcoming (the today boundary is exclusive), end <= todayStart means
// past.
func (r *Resolver) bucketOf(ev model.CalendarEvent, todayStart, todayEnd time.Time) Bucket {
	if ev.Start.AllDay {
		switch {
		case ev.Start.Time.After(todayStart):
			return BucketUpcoming
		case ev.End.Time.After(todayStart):
			return BucketToday
		default:
			return BucketPast
		}
	}

	switch {
	case !ev.Start.Time.Before(todayEnd):
		return BucketUpcoming
	case !ev.End.Time.After(todayStart):
		return BucketPast
	default:
		return BucketToday
	}
}

// Convert parses a raw wire event into the domain representation,
// interpreting whole-day dates at local midnight and normalizing
// instants into the resolver's zone. It fails when the start and end
// boundary variants do not match or a boundary cannot be parsed.
func (r *Resolver) Convert(raw gcalendar.Event) (model.CalendarEvent, error) {
	start, err := r.parseBoundary(raw.Start)
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("start boundary: %w", err)
	}
	end, err := r.parseBoundary(raw.End)
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("end boundary: %w", err)
	}
	if start.AllDay != end.AllDay {
		return model.CalendarEvent{}, fmt.Errorf("start/end boundary variants do not match")
	}

	return model.CalendarEvent{
		ID:          raw.ID,
		Title:       raw.Summary,
		Location:    raw.Location,
		Description: raw.Description,
		Start:       start,
		End:         end,
		Cancelled:   raw.Status == "cancelled",
	}, nil
}

func (r *Resolver) parseBoundary(t gcalendar.EventTime) (model.EventTime, error) {
	switch {
	case t.DateTime != "":
		instant, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return model.EventTime{}, fmt.Errorf("unparsable instant %q: %w", t.DateTime, err)
		}
		return model.EventTime{Time: instant.In(r.loc)}, nil
	case t.Date != "":
		day, err := time.ParseInLocation(dateLayout, t.Date, r.loc)
		if err != nil {
			return model.EventTime{}, fmt.Errorf("unparsable date %q: %w", t.Date, err)
		}
		return model.EventTime{Time: day, AllDay: true}, nil
	default:
		return model.EventTime{}, fmt.Errorf("boundary carries neither date nor dateTime")
	}
}

// Merge combines the results of disjoint range queries into one window.
// The remote service returns every event overlapping a queried range,
// so a multi-day event can come back from more than one fetch; the
// first occurrence of an event ID wins and later ones are dropped,
// keeping each event in exactly one bucket exactly once.
func Merge(results ...Result) Result {
	var merged Result
	seen := make(map[string]struct{})

	appendBucket := func(dst []model.CalendarEvent, src []model.CalendarEvent) []model.CalendarEvent {
		for _, ev := range src {
			if _, ok := seen[ev.ID]; ok {
				continue
			}
			seen[ev.ID] = struct{}{}
			dst = append(dst, ev)
		}
		return dst
	}

	reported := make(map[string]struct{})
	for _, res := range results {
		merged.Past = appendBucket(merged.Past, res.Past)
		merged.Today = appendBucket(merged.Today, res.Today)
		merged.Upcoming = appendBucket(merged.Upcoming, res.Upcoming)
		for _, m := range res.Malformed {
			if _, ok := reported[m.EventID]; ok && m.EventID != "" {
				continue
			}
			reported[m.EventID] = struct{}{}
			merged.Malformed = append(merged.Malformed, m)
		}
	}

	sortBucket(merged.Past)
	sortBucket(merged.Today)
	sortBucket(merged.Upcoming)
	return merged
}

// sortBucket orders events by start boundary ascending; whole-day
// events sort at their implicit local midnight.
func sortBucket(events []model.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Time.Before(events[j].Start.Time)
	})
}
