package usecase

import (
	"time"

	"voicecal/internal/event"
	"voicecal/pkg/gcalendar"
)

const dateLayout = "2006-01-02"

// toWire translates a validated draft into the remote representation.
// Whole-day drafts become date-only boundaries with the end-exclusive
// convention applied (wire end is the day after the user's inclusive
// end date); timed drafts become RFC3339 instants in the resolver's
// zone, carrying the IANA zone name on both boundaries.
func (uc *implUseCase) toWire(draft event.Draft) gcalendar.Event {
	ev := gcalendar.Event{
		Summary:     draft.Name,
		Location:    draft.Location,
		Description: draft.Remarks,
	}

	if draft.AllDay {
		ev.Start = gcalendar.EventTime{Date: civilDate(draft.Start).Format(dateLayout)}
		ev.End = gcalendar.EventTime{Date: civilDate(draft.End).AddDate(0, 0, 1).Format(dateLayout)}
		return ev
	}

	loc := uc.resolver.Location()
	zone := loc.String()
	ev.Start = gcalendar.EventTime{
		DateTime: draft.Start.In(loc).Format(time.RFC3339),
		TimeZone: zone,
	}
	ev.End = gcalendar.EventTime{
		DateTime: draft.End.In(loc).Format(time.RFC3339),
		TimeZone: zone,
	}
	return ev
}
