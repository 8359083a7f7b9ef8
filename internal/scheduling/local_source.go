package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SourceLocal имя локального источника слотов
const SourceLocal = "local"

// LocalSource считает слоты по недельному расписанию, записям и блокам из собственной БД
type LocalSource struct {
	resolver   *Resolver
	aggregator *Aggregator
	zone       *Zone
}

// NewLocalSource создает локальный источник слотов
func NewLocalSource(resolver *Resolver, aggregator *Aggregator, zone *Zone) *LocalSource {
	return &LocalSource{resolver: resolver, aggregator: aggregator, zone: zone}
}

// Name возвращает имя источника
func (s *LocalSource) Name() string {
	return SourceLocal
}

// Slots вызывает генератор для каждого дня
func (s *LocalSource) Slots(ctx context.Context, q Query) ([]domain.DaySlots, error) {
	if q.Service == nil || q.Service.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	days := q.Days
	if days < 1 {
		days = 1
	}

	result := make([]domain.DaySlots, 0, days)
	for i := 0; i < days; i++ {
		date := s.zone.AddDays(q.From, i)

		daySlots, err := s.day(ctx, q, date)
		if err != nil {
			return nil, err
		}
		result = append(result, *daySlots)
	}

	return result, nil
}

func (s *LocalSource) day(ctx context.Context, q Query, date time.Time) (*domain.DaySlots, error) {
	window, err := s.resolver.Resolve(ctx, date)
	if err != nil {
		return nil, err
	}

	// Выходной: препятствия не запрашиваем
	if !window.Open {
		return &domain.DaySlots{Date: date, Slots: []domain.Slot{}}, nil
	}

	obstructions, err := s.aggregator.Collect(ctx, date)
	if err != nil {
		return nil, err
	}

	slots, err := GenerateSlots(s.zone, Params{
		Date:            date,
		Window:          window,
		DurationMinutes: q.Service.DurationMinutes,
		BufferMinutes:   q.Settings.BufferMinutes,
		CadenceMinutes:  q.Settings.SlotCadenceMinutes,
		LeadTimeMinutes: q.Settings.LeadTimeMinutes,
		Now:             q.Now,
		Obstructions:    *obstructions,
	})
	if err != nil {
		return nil, err
	}

	return &domain.DaySlots{Date: date, Slots: slots}, nil
}
