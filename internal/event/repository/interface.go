package repository

import (
	"context"
	"time"

	"voicecal/pkg/gcalendar"
)

// CalendarRepository is the remote calendar service surface the façade
// depends on. The [timeMin, timeMax) range is half-open and the service
// returns every event overlapping it.
type CalendarRepository interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]gcalendar.Event, error)
	Insert(ctx context.Context, calendarID string, ev gcalendar.Event) (*gcalendar.Event, error)
	Update(ctx context.Context, calendarID, eventID string, ev gcalendar.Event) (*gcalendar.Event, error)
	Delete(ctx context.Context, calendarID, eventID string) error
	GetCalendar(ctx context.Context, calendarID string) (*gcalendar.Calendar, error)
}
