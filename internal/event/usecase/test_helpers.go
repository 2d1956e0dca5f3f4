package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"voicecal/internal/model"
	"voicecal/pkg/gcalendar"
)

type listCall struct {
	calendarID string
	min, max   time.Time
}

// fakeRepo records remote calls and echoes mutations back the way the
// service does, assigning IDs to inserts.
type fakeRepo struct {
	mu sync.Mutex

	listCalls []listCall
	listFn    func(min, max time.Time) []gcalendar.Event
	listErr   error

	inserted  []gcalendar.Event
	insertErr error

	updated   map[string]gcalendar.Event
	updateErr error

	deleted   []string
	deleteErr error

	calendars    map[string]gcalendar.Calendar
	calendarHits int
	calendarErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		updated:   make(map[string]gcalendar.Event),
		calendars: make(map[string]gcalendar.Calendar),
	}
}

func (f *fakeRepo) ListEvents(_ context.Context, calendarID string, timeMin, timeMax time.Time) ([]gcalendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, listCall{calendarID, timeMin, timeMax})
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(timeMin, timeMax), nil
}

func (f *fakeRepo) Insert(_ context.Context, _ string, ev gcalendar.Event) (*gcalendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	ev.ID = "created-1"
	f.inserted = append(f.inserted, ev)
	return &ev, nil
}

func (f *fakeRepo) Update(_ context.Context, _ string, eventID string, ev gcalendar.Event) (*gcalendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	ev.ID = eventID
	f.updated[eventID] = ev
	return &ev, nil
}

func (f *fakeRepo) Delete(_ context.Context, _ string, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func (f *fakeRepo) GetCalendar(_ context.Context, calendarID string) (*gcalendar.Calendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calendarHits++
	if f.calendarErr != nil {
		return nil, f.calendarErr
	}
	cal, ok := f.calendars[calendarID]
	if !ok {
		return nil, errors.New("calendar not found")
	}
	return &cal, nil
}

// fakeAuth hands out a static credential or a configured failure.
type fakeAuth struct {
	mu      sync.Mutex
	err     error
	calls   int
	cleared bool
}

func (f *fakeAuth) GetValid(context.Context) (*model.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.Credential{AccessToken: "test-access"}, nil
}

func (f *fakeAuth) CreateInteractive(context.Context) (*model.Credential, error) {
	return nil, errors.New("not supported in tests")
}

func (f *fakeAuth) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = true
	return nil
}

func (f *fakeAuth) TokenSource(context.Context) oauth2.TokenSource {
	return nil
}
