package usecase

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"voicecal/internal/auth"
	"voicecal/internal/event/repository"
	"voicecal/internal/model"
	"voicecal/internal/window"
	pkgLog "voicecal/pkg/log"
	"voicecal/pkg/suggest"
)

// metaCacheSize bounds the cached calendar-metadata entries. A desktop
// install touches a handful of calendars at most.
const metaCacheSize = 16

type implUseCase struct {
	l           pkgLog.Logger
	repo        repository.CalendarRepository
	authMgr     auth.Manager
	resolver    *window.Resolver
	suggestions *suggest.Store

	calendarID   string
	pastDays     int
	upcomingDays int

	// refreshDelay is the wait before the post-mutation re-fetch
	// signal; the remote service is eventually consistent right after
	// a write.
	refreshDelay time.Duration
	onRefresh    func()

	metaCache *lru.Cache[string, model.CalendarInfo]

	now func() time.Time
}

// New creates a new event UseCase instance. onRefresh is invoked once
// per successful mutation, refreshDelay after the remote call returns;
// pass nil when no consumer listens.
func New(
	l pkgLog.Logger,
	repo repository.CalendarRepository,
	authMgr auth.Manager,
	resolver *window.Resolver,
	suggestions *suggest.Store,
	calendarID string,
	pastDays int,
	upcomingDays int,
	refreshDelay time.Duration,
	onRefresh func(),
) *implUseCase {
	// lru.New only fails for a non-positive size.
	metaCache, _ := lru.New[string, model.CalendarInfo](metaCacheSize)
	return &implUseCase{
		l:            l,
		repo:         repo,
		authMgr:      authMgr,
		resolver:     resolver,
		suggestions:  suggestions,
		calendarID:   calendarID,
		pastDays:     pastDays,
		upcomingDays: upcomingDays,
		refreshDelay: refreshDelay,
		onRefresh:    onRefresh,
		metaCache:    metaCache,
		now:          time.Now,
	}
}

// scheduleRefresh arms exactly one delayed re-fetch signal. Callers
// invoke it only after a mutation has succeeded remotely.
func (uc *implUseCase) scheduleRefresh() {
	if uc.onRefresh == nil {
		return
	}
	time.AfterFunc(uc.refreshDelay, uc.onRefresh)
}
