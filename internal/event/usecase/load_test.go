package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"voicecal/internal/event"
	"voicecal/internal/model"
	"voicecal/pkg/gcalendar"
)

func TestLoadWindow(t *testing.T) {
	f := newFixture(t)

	refDate := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	todayStart := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	todayEnd := time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)

	// A whole-day event spanning the reference date overlaps every
	// queried range, so the service hands it back three times.
	span := gcalendar.Event{
		ID:      "span",
		Summary: "Festival week",
		Status:  "confirmed",
		Start:   gcalendar.EventTime{Date: "2024-06-10"},
		End:     gcalendar.EventTime{Date: "2024-06-21"},
	}
	pastEv := gcalendar.Event{
		ID: "past", Summary: "Old meeting", Status: "confirmed",
		Start: gcalendar.EventTime{DateTime: "2024-06-01T09:00:00Z"},
		End:   gcalendar.EventTime{DateTime: "2024-06-01T10:00:00Z"},
	}
	todayEv := gcalendar.Event{
		ID: "today", Summary: "Standup", Status: "confirmed",
		Start: gcalendar.EventTime{DateTime: "2024-06-15T14:00:00Z"},
		End:   gcalendar.EventTime{DateTime: "2024-06-15T14:15:00Z"},
	}
	upcomingEv := gcalendar.Event{
		ID: "up", Summary: "Offsite", Status: "confirmed",
		Start: gcalendar.EventTime{DateTime: "2024-06-18T09:00:00Z"},
		End:   gcalendar.EventTime{DateTime: "2024-06-18T17:00:00Z"},
	}
	mismatched := gcalendar.Event{
		ID: "bad", Summary: "Broken", Status: "confirmed",
		Start: gcalendar.EventTime{DateTime: "2024-06-01T09:00:00Z"},
		End:   gcalendar.EventTime{Date: "2024-06-01"},
	}

	f.repo.listFn = func(min, max time.Time) []gcalendar.Event {
		evs := []gcalendar.Event{span}
		switch {
		case max.Equal(todayStart):
			evs = append(evs, pastEv, mismatched)
		case min.Equal(todayStart):
			evs = append(evs, todayEv)
		default:
			evs = append(evs, upcomingEv)
		}
		return evs
	}

	win, err := f.uc.LoadWindow(context.Background(), refDate)
	if err != nil {
		t.Fatalf("LoadWindow: %v", err)
	}

	if len(f.repo.listCalls) != 3 {
		t.Fatalf("list calls = %d, want 3", len(f.repo.listCalls))
	}
	wantCalls := []listCall{
		{"primary", todayStart.AddDate(0, 0, -30), todayStart},
		{"primary", todayStart, todayEnd},
		{"primary", todayEnd, todayEnd.AddDate(0, 0, 30)},
	}
	for i, want := range wantCalls {
		got := f.repo.listCalls[i]
		if got.calendarID != want.calendarID || !got.min.Equal(want.min) || !got.max.Equal(want.max) {
			t.Fatalf("list call %d = %+v, want %+v", i, got, want)
		}
	}

	if got := idList(win.Past); len(got) != 1 || got[0] != "past" {
		t.Fatalf("past = %v", got)
	}
	if got := idList(win.Today); len(got) != 2 || got[0] != "span" || got[1] != "today" {
		t.Fatalf("today = %v", got)
	}
	if got := idList(win.Upcoming); len(got) != 1 || got[0] != "up" {
		t.Fatalf("upcoming = %v", got)
	}
	if win.Size() != 4 {
		t.Fatalf("window size = %d, want 4 (span appears once)", win.Size())
	}
	if len(win.Malformed) != 1 || win.Malformed[0].EventID != "bad" {
		t.Fatalf("malformed = %+v", win.Malformed)
	}
}

func TestLoadWindow_RemoteFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.listErr = errors.New("backend unavailable")

	_, err := f.uc.LoadWindow(context.Background(), time.Now())
	if !errors.Is(err, event.ErrRemoteCall) {
		t.Fatalf("expected ErrRemoteCall, got %v", err)
	}
}

func idList(events []model.CalendarEvent) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}
