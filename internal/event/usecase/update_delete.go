package usecase

import (
	"context"
	"fmt"

	"voicecal/internal/event"
	"voicecal/internal/model"
)

// Update replaces the user-editable fields of an existing event. The
// remote patch semantics keep fields the draft does not carry.
func (uc *implUseCase) Update(ctx context.Context, id string, draft event.Draft) (*model.CalendarEvent, error) {
	if id == "" {
		return nil, &event.ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if err := uc.Validate(draft); err != nil {
		return nil, err
	}
	if _, err := uc.authMgr.GetValid(ctx); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, uc.calendarID, id, uc.toWire(draft))
	if err != nil {
		uc.l.Errorf(ctx, "event.usecase.Update: patch %s: %v", id, err)
		return nil, fmt.Errorf("%w: %w", event.ErrRemoteCall, err)
	}

	uc.recordTitle(ctx, draft.Name)
	uc.scheduleRefresh()

	ev, err := uc.resolver.Convert(*updated)
	if err != nil {
		return nil, fmt.Errorf("decode updated event: %w", err)
	}
	return &ev, nil
}

// Delete removes an event remotely and arms the delayed re-fetch.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &event.ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if _, err := uc.authMgr.GetValid(ctx); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, uc.calendarID, id); err != nil {
		uc.l.Errorf(ctx, "event.usecase.Delete: %s: %v", id, err)
		return fmt.Errorf("%w: %w", event.ErrRemoteCall, err)
	}

	uc.scheduleRefresh()
	return nil
}
