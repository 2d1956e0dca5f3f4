package gcalendar

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// defaultMaxResults matches the service-side maximum so a single page
// covers any realistic window query.
const defaultMaxResults = 2500

// Client wraps the Google Calendar API service. All calls go through a
// shared limiter to stay under the per-user query quota.
type Client struct {
	service *calendar.Service
	limiter *rate.Limiter
}

// NewClient creates a Calendar client whose calls authenticate through
// the given token source.
func NewClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return newClient(svc), nil
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return newClient(svc), nil
}

func newClient(svc *calendar.Service) *Client {
	return &Client{
		service: svc,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// ListEvents lists events whose interval overlaps [TimeMin, TimeMax).
// Recurring events are expanded to single instances and cancelled
// occurrences are not requested; the categorization layer still guards
// against a cancelled status slipping through.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}

	resp, err := c.service.Events.List(calendarID(req.CalendarID)).
		TimeMin(req.TimeMin.Format(timeFormat)).
		TimeMax(req.TimeMax.Format(timeFormat)).
		SingleEvents(true).
		OrderBy("startTime").
		ShowDeleted(false).
		MaxResults(maxResults).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, fromAPIEvent(item))
	}
	return events, nil
}

// InsertEvent creates a new event and returns the stored form.
func (c *Client) InsertEvent(ctx context.Context, calID string, ev Event) (*Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	created, err := c.service.Events.Insert(calendarID(calID), toAPIEvent(ev)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	out := fromAPIEvent(created)
	return &out, nil
}

// PatchEvent updates only the fields set in ev, leaving the rest of the
// stored event untouched.
func (c *Client) PatchEvent(ctx context.Context, calID, eventID string, ev Event) (*Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	updated, err := c.service.Events.Patch(calendarID(calID), eventID, toAPIEvent(ev)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar event: %w", err)
	}
	out := fromAPIEvent(updated)
	return &out, nil
}

// DeleteEvent removes an event by its identifier.
func (c *Client) DeleteEvent(ctx context.Context, calID, eventID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if err := c.service.Events.Delete(calendarID(calID), eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

// GetCalendar fetches the metadata of a single calendar.
func (c *Client) GetCalendar(ctx context.Context, calID string) (*Calendar, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	cal, err := c.service.Calendars.Get(calendarID(calID)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}
	return &Calendar{ID: cal.Id, Summary: cal.Summary, TimeZone: cal.TimeZone}, nil
}

func calendarID(id string) string {
	if id == "" {
		return "primary"
	}
	return id
}

const timeFormat = "2006-01-02T15:04:05Z07:00" // time.RFC3339

func toAPIEvent(ev Event) *calendar.Event {
	out := &calendar.Event{
		Id:          ev.ID,
		Summary:     ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
	}
	if !ev.Start.Zero() {
		out.Start = toAPIEventTime(ev.Start)
	}
	if !ev.End.Zero() {
		out.End = toAPIEventTime(ev.End)
	}
	return out
}

func toAPIEventTime(t EventTime) *calendar.EventDateTime {
	return &calendar.EventDateTime{
		Date:     t.Date,
		DateTime: t.DateTime,
		TimeZone: t.TimeZone,
	}
}

func fromAPIEvent(ev *calendar.Event) Event {
	out := Event{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
		Status:      ev.Status,
		HtmlLink:    ev.HtmlLink,
	}
	if ev.Start != nil {
		out.Start = EventTime{Date: ev.Start.Date, DateTime: ev.Start.DateTime, TimeZone: ev.Start.TimeZone}
	}
	if ev.End != nil {
		out.End = EventTime{Date: ev.End.Date, DateTime: ev.End.DateTime, TimeZone: ev.End.TimeZone}
	}
	return out
}
