package usecase

import (
	"context"
	"fmt"

	"voicecal/internal/event"
	"voicecal/internal/model"
)

// Create validates the draft, inserts it remotely and arms the delayed
// re-fetch. Nothing local changes when any step fails.
func (uc *implUseCase) Create(ctx context.Context, draft event.Draft) (*model.CalendarEvent, error) {
	if err := uc.Validate(draft); err != nil {
		return nil, err
	}
	if _, err := uc.authMgr.GetValid(ctx); err != nil {
		return nil, err
	}

	created, err := uc.repo.Insert(ctx, uc.calendarID, uc.toWire(draft))
	if err != nil {
		uc.l.Errorf(ctx, "event.usecase.Create: insert: %v", err)
		return nil, fmt.Errorf("%w: %w", event.ErrRemoteCall, err)
	}

	uc.recordTitle(ctx, draft.Name)
	uc.scheduleRefresh()

	ev, err := uc.resolver.Convert(*created)
	if err != nil {
		return nil, fmt.Errorf("decode created event: %w", err)
	}
	return &ev, nil
}

// recordTitle appends the title to the suggestion store. A store
// failure never fails the mutation that produced it.
func (uc *implUseCase) recordTitle(ctx context.Context, name string) {
	if uc.suggestions == nil {
		return
	}
	if err := uc.suggestions.Append(name); err != nil {
		uc.l.Warnf(ctx, "event.usecase.recordTitle: %v", err)
	}
}
