package usecase

import (
	"context"
	"fmt"

	"voicecal/internal/event"
	"voicecal/internal/model"
)

// Login verifies that the credential grants access to the calendar by
// fetching its metadata. Metadata is cached per calendar ID; the cache
// lives until Logout.
func (uc *implUseCase) Login(ctx context.Context, calendarID string) (*model.CalendarInfo, error) {
	if calendarID == "" {
		calendarID = uc.calendarID
	}

	if info, ok := uc.metaCache.Get(calendarID); ok {
		return &info, nil
	}

	if _, err := uc.authMgr.GetValid(ctx); err != nil {
		return nil, err
	}

	cal, err := uc.repo.GetCalendar(ctx, calendarID)
	if err != nil {
		uc.l.Errorf(ctx, "event.usecase.Login: get calendar %s: %v", calendarID, err)
		return nil, fmt.Errorf("%w: %w", event.ErrRemoteCall, err)
	}

	info := model.CalendarInfo{
		ID:       cal.ID,
		Summary:  cal.Summary,
		Timezone: cal.TimeZone,
	}
	uc.metaCache.Add(calendarID, info)
	uc.l.Infof(ctx, "event.usecase.Login: signed in to calendar %s (%s)", info.ID, info.Summary)
	return &info, nil
}

// Logout clears the stored credential and drops cached calendar
// metadata.
func (uc *implUseCase) Logout(ctx context.Context) error {
	uc.metaCache.Purge()
	if err := uc.authMgr.Clear(ctx); err != nil {
		return err
	}
	uc.l.Infof(ctx, "event.usecase.Logout: signed out")
	return nil
}
