package gcalendar_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voicecal/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*gcalendar.Client, *httptest.Server) {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client, ts
}

func TestListEvents(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/test-fail/events" && r.Method == http.MethodGet {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodGet {
			q := r.URL.Query()
			if q.Get("singleEvents") != "true" {
				t.Errorf("expected singleEvents=true, got %q", q.Get("singleEvents"))
			}
			if q.Get("showDeleted") != "false" {
				t.Errorf("expected showDeleted=false, got %q", q.Get("showDeleted"))
			}
			if q.Get("timeMin") == "" || q.Get("timeMax") == "" {
				t.Error("expected timeMin and timeMax to be set")
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"items": [
					{
						"id": "event-1",
						"summary": "Team sync",
						"status": "confirmed",
						"start": { "dateTime": "2024-06-10T10:00:00+09:00", "timeZone": "Asia/Tokyo" },
						"end": { "dateTime": "2024-06-10T11:00:00+09:00", "timeZone": "Asia/Tokyo" }
					},
					{
						"id": "event-2",
						"summary": "Holiday",
						"status": "confirmed",
						"start": { "date": "2024-06-09" },
						"end": { "date": "2024-06-12" }
					}
				]
			}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	events, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
		CalendarID: "primary",
		TimeMin:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeMax:    time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Start.DateTime != "2024-06-10T10:00:00+09:00" {
		t.Errorf("unexpected timed start: %q", events[0].Start.DateTime)
	}
	if events[1].Start.Date != "2024-06-09" || events[1].End.Date != "2024-06-12" {
		t.Errorf("unexpected whole-day boundaries: %+v %+v", events[1].Start, events[1].End)
	}

	_, err = client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
		CalendarID: "test-fail",
		TimeMin:    time.Now(),
		TimeMax:    time.Now().Add(24 * time.Hour),
	})
	if err == nil {
		t.Fatal("expected api error on test-fail")
	}
}

func TestInsertEvent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost {
			var body struct {
				Summary string `json:"summary"`
				Start   struct {
					Date string `json:"date"`
				} `json:"start"`
				End struct {
					Date string `json:"date"`
				} `json:"end"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode insert body: %v", err)
			}
			if body.Start.Date != "2024-01-01" || body.End.Date != "2024-01-02" {
				t.Errorf("unexpected whole-day payload: %+v", body)
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"id": "event-123",
				"summary": "New Year",
				"status": "confirmed",
				"htmlLink": "https://calendar.google.com/event-uri",
				"start": { "date": "2024-01-01" },
				"end": { "date": "2024-01-02" }
			}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	created, err := client.InsertEvent(context.Background(), "primary", gcalendar.Event{
		Summary: "New Year",
		Start:   gcalendar.EventTime{Date: "2024-01-01"},
		End:     gcalendar.EventTime{Date: "2024-01-02"},
	})
	if err != nil {
		t.Fatalf("failed to insert event: %v", err)
	}
	if created.ID != "event-123" {
		t.Errorf("unexpected id: %s", created.ID)
	}
	if created.HtmlLink != "https://calendar.google.com/event-uri" {
		t.Errorf("unexpected link: %s", created.HtmlLink)
	}
}

func TestPatchEvent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/primary/events/event-123" && r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"id": "event-123",
				"summary": "Renamed",
				"status": "confirmed",
				"start": { "dateTime": "2024-01-01T10:00:00Z" },
				"end": { "dateTime": "2024-01-01T11:00:00Z" }
			}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	updated, err := client.PatchEvent(context.Background(), "primary", "event-123", gcalendar.Event{
		Summary: "Renamed",
	})
	if err != nil {
		t.Fatalf("failed to patch event: %v", err)
	}
	if updated.Summary != "Renamed" {
		t.Errorf("unexpected summary: %s", updated.Summary)
	}
}

func TestDeleteEvent(t *testing.T) {
	deleted := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/primary/events/event-123" && r.Method == http.MethodDelete {
			deleted = true
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	if err := client.DeleteEvent(context.Background(), "primary", "event-123"); err != nil {
		t.Fatalf("failed to delete event: %v", err)
	}
	if !deleted {
		t.Error("delete request never reached the server")
	}

	if err := client.DeleteEvent(context.Background(), "primary", "missing"); err == nil {
		t.Fatal("expected error deleting unknown event")
	}
}

func TestGetCalendar(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/user%40example.com" ||
			r.URL.Path == "/calendar/v3/calendars/user@example.com" {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"id": "user@example.com",
				"summary": "Personal",
				"timeZone": "Asia/Tokyo"
			}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	cal, err := client.GetCalendar(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("failed to get calendar: %v", err)
	}
	if cal.Summary != "Personal" || cal.TimeZone != "Asia/Tokyo" {
		t.Errorf("unexpected calendar metadata: %+v", cal)
	}
}
