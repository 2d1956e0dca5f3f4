// Package gcal implements the calendar repository over the Google
// Calendar API client.
package gcal

import (
	"context"
	"time"

	"voicecal/internal/event/repository"
	"voicecal/pkg/gcalendar"
)

type repo struct {
	client *gcalendar.Client
}

func New(client *gcalendar.Client) repository.CalendarRepository {
	return &repo{client: client}
}

func (r *repo) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]gcalendar.Event, error) {
	return r.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: calendarID,
		TimeMin:    timeMin,
		TimeMax:    timeMax,
	})
}

func (r *repo) Insert(ctx context.Context, calendarID string, ev gcalendar.Event) (*gcalendar.Event, error) {
	return r.client.InsertEvent(ctx, calendarID, ev)
}

func (r *repo) Update(ctx context.Context, calendarID, eventID string, ev gcalendar.Event) (*gcalendar.Event, error) {
	return r.client.PatchEvent(ctx, calendarID, eventID, ev)
}

func (r *repo) Delete(ctx context.Context, calendarID, eventID string) error {
	return r.client.DeleteEvent(ctx, calendarID, eventID)
}

func (r *repo) GetCalendar(ctx context.Context, calendarID string) (*gcalendar.Calendar, error) {
	return r.client.GetCalendar(ctx, calendarID)
}
