package usecase

import (
	"context"
	"fmt"
	"time"

	"voicecal/internal/event"
	"voicecal/internal/window"
)

// LoadWindow rebuilds the past/today/upcoming window around refDate.
// It issues three disjoint range queries so each fetch maps to one
// bucket's horizon, categorizes each against the same reference date
// and merges; the merge deduplicates events the service returned from
// more than one range. Malformed events are logged, never fatal.
func (uc *implUseCase) LoadWindow(ctx context.Context, refDate time.Time) (*event.Window, error) {
	if _, err := uc.authMgr.GetValid(ctx); err != nil {
		return nil, err
	}

	todayStart, todayEnd := uc.resolver.DayBounds(refDate)
	ranges := []struct {
		min, max time.Time
	}{
		{todayStart.AddDate(0, 0, -uc.pastDays), todayStart},
		{todayStart, todayEnd},
		{todayEnd, todayEnd.AddDate(0, 0, uc.upcomingDays)},
	}

	results := make([]window.Result, 0, len(ranges))
	for _, r := range ranges {
		raw, err := uc.repo.ListEvents(ctx, uc.calendarID, r.min, r.max)
		if err != nil {
			uc.l.Errorf(ctx, "event.usecase.LoadWindow: list [%s, %s): %v", r.min, r.max, err)
			return nil, fmt.Errorf("%w: %w", event.ErrRemoteCall, err)
		}
		results = append(results, uc.resolver.Categorize(raw, refDate))
	}

	merged := window.Merge(results...)
	for _, m := range merged.Malformed {
		uc.l.Warnf(ctx, "event.usecase.LoadWindow: dropped malformed event %s (%s): %s", m.EventID, m.Title, m.Reason)
	}
	return &merged, nil
}
