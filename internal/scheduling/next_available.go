package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// NextAvailableFinder ищет первую дату со свободным слотом окнами вперед
type NextAvailableFinder struct {
	source SlotSource
	zone   *Zone
	logger Logger
}

// NewNextAvailableFinder создает поиск ближайшей доступной даты
func NewNextAvailableFinder(source SlotSource, zone *Zone, logger Logger) *NextAvailableFinder {
	return &NextAvailableFinder{source: source, zone: zone, logger: logger}
}

// Find проходит settings.SearchWindows окон по settings.SearchWindowDays дней начиная с from.
// Возвращает первую дату со свободным слотом или nil, если горизонт исчерпан.
// Ошибка платформы в одном окне логируется; ошибка возвращается, только если не удалось ни одно окно.
func (f *NextAvailableFinder) Find(ctx context.Context, service *domain.Service, from time.Time, settings domain.Settings, now time.Time) (*time.Time, error) {
	windowDays := settings.SearchWindowDays
	if windowDays < 1 {
		windowDays = domain.DefaultSearchWindowDays
	}
	windows := settings.SearchWindows
	if windows < 1 {
		windows = domain.DefaultSearchWindows
	}

	start := f.zone.Date(from)
	var lastErr error
	searched := 0

	for i := 0; i < windows; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		windowStart := f.zone.AddDays(start, i*windowDays)
		days, err := f.source.Slots(ctx, Query{
			Service:  service,
			From:     windowStart,
			Days:     windowDays,
			Settings: settings,
			Now:      now,
		})
		if err != nil {
			if !errors.Is(err, ErrUpstream) {
				return nil, err
			}
			f.logger.Warn("NextAvailable: window %d starting %s failed: %v",
				i, windowStart.Format(domain.DateFormat), err)
			lastErr = err
			continue
		}
		searched++

		for _, day := range days {
			if day.HasAvailable() {
				date := day.Date
				return &date, nil
			}
		}
	}

	if searched == 0 && lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}
