package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// LocalGuard проверяет пересечение с записями без буфера.
// Выполняется в той же транзакции, что и вставка; окончательная гарантия за ограничением EXCLUDE.
type LocalGuard struct {
	checker OverlapChecker
}

// NewLocalGuard создает проверку конфликтов по локальной БД
func NewLocalGuard(checker OverlapChecker) *LocalGuard {
	return &LocalGuard{checker: checker}
}

// Check возвращает ErrSlotConflict, если неотмененная запись пересекает [start, end)
func (g *LocalGuard) Check(ctx context.Context, start, end time.Time) error {
	exists, err := g.checker.ExistsOverlapping(ctx, start, end)
	if err != nil {
		return fmt.Errorf("%w: exists overlapping: %w", ErrStore, err)
	}
	if exists {
		return ErrSlotConflict
	}
	return nil
}

// PlatformGuard проверяет слот на платформе до транзакции и локальную очередь заявок внутри нее
type PlatformGuard struct {
	local       ConflictGuard
	searcher    AvailabilitySearcher
	variationID string
	duration    int
}

// NewPlatformGuard создает проверку конфликтов для режима внешней платформы
func NewPlatformGuard(local ConflictGuard, searcher AvailabilitySearcher, variationID string, durationMinutes int) *PlatformGuard {
	return &PlatformGuard{
		local:       local,
		searcher:    searcher,
		variationID: variationID,
		duration:    durationMinutes,
	}
}

// Precheck спрашивает платформу, предлагается ли еще точное время начала
func (g *PlatformGuard) Precheck(ctx context.Context, start, _ time.Time) error {
	starts, err := g.searcher.SearchAvailability(ctx, start, start.Add(time.Minute), g.variationID, g.duration)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	for _, s := range starts {
		if s.Equal(start) {
			return nil
		}
	}
	return ErrSlotConflict
}

// Check проверяет локальную очередь заявок, еще не попавших на платформу
func (g *PlatformGuard) Check(ctx context.Context, start, end time.Time) error {
	return g.local.Check(ctx, start, end)
}

// ScheduleGuard отклоняет время вне рабочего окна и пересечения с блоками, затем вызывает next
type ScheduleGuard struct {
	next     ConflictGuard
	resolver *Resolver
	blocked  BlockedStore
	zone     *Zone
}

// NewScheduleGuard создает проверку рабочего окна и блокировок
func NewScheduleGuard(next ConflictGuard, resolver *Resolver, blocked BlockedStore, zone *Zone) *ScheduleGuard {
	return &ScheduleGuard{next: next, resolver: resolver, blocked: blocked, zone: zone}
}

// Check проверяет окно дня, блокировки и пересечения с записями
func (g *ScheduleGuard) Check(ctx context.Context, start, end time.Time) error {
	date, clock := g.zone.ToLocal(start)

	window, err := g.resolver.Resolve(ctx, date)
	if err != nil {
		return err
	}
	if !window.Open {
		return ErrOutsideHours
	}

	startMin, err := clock.Minutes()
	if err != nil {
		return err
	}
	windowStart, err := window.Start.Minutes()
	if err != nil {
		return err
	}
	windowEnd, err := window.End.Minutes()
	if err != nil {
		return err
	}
	duration := int(end.Sub(start) / time.Minute)
	if startMin < windowStart || startMin+duration > windowEnd {
		return ErrOutsideHours
	}

	blocked, err := g.blocked.ListIntersecting(ctx, start, end)
	if err != nil {
		return fmt.Errorf("%w: blocked intervals: %w", ErrStore, err)
	}
	for _, b := range blocked {
		if domain.Overlaps(start, end, b.Start, b.End) {
			return ErrSlotConflict
		}
	}

	return g.next.Check(ctx, start, end)
}

// Guards выбирает проверку конфликтов для услуги
type Guards interface {
	For(service *domain.Service) (ConflictGuard, error)
}

// LocalGuards проверки для локального режима
type LocalGuards struct {
	guard ConflictGuard
}

// NewLocalGuards создает проверки для локального режима: окно дня, блокировки, пересечения
func NewLocalGuards(checker OverlapChecker, resolver *Resolver, blocked BlockedStore, zone *Zone) *LocalGuards {
	return &LocalGuards{
		guard: NewScheduleGuard(NewLocalGuard(checker), resolver, blocked, zone),
	}
}

// For возвращает одну и ту же проверку для любой услуги
func (g *LocalGuards) For(_ *domain.Service) (ConflictGuard, error) {
	return g.guard, nil
}

// PlatformGuards проверки для режима внешней платформы
type PlatformGuards struct {
	local    ConflictGuard
	searcher AvailabilitySearcher
}

// NewPlatformGuards создает проверки для режима внешней платформы
func NewPlatformGuards(checker OverlapChecker, searcher AvailabilitySearcher) *PlatformGuards {
	return &PlatformGuards{local: NewLocalGuard(checker), searcher: searcher}
}

// For требует ID вариации услуги на платформе
func (g *PlatformGuards) For(service *domain.Service) (ConflictGuard, error) {
	if service.PlatformVariationID == nil || *service.PlatformVariationID == "" {
		return nil, ErrServiceNotBookable
	}
	return NewPlatformGuard(g.local, g.searcher, *service.PlatformVariationID, service.DurationMinutes), nil
}
