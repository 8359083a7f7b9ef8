package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Obstructions интервалы, которые могут сделать слот недоступным
type Obstructions struct {
	Appointments []domain.Interval // неотмененные записи, начинающиеся в этот день
	Blocked      []domain.Interval // блокировки, пересекающие день
}

// Aggregator собирает препятствия за сутки
type Aggregator struct {
	appointments AppointmentStore
	blocked      BlockedStore
	zone         *Zone
}

// NewAggregator создает агрегатор препятствий
func NewAggregator(appointments AppointmentStore, blocked BlockedStore, zone *Zone) *Aggregator {
	return &Aggregator{appointments: appointments, blocked: blocked, zone: zone}
}

// Collect возвращает помехи на локальный календарный день; буфер здесь не применяется
func (a *Aggregator) Collect(ctx context.Context, date time.Time) (*Obstructions, error) {
	from, to := a.zone.DayBounds(date)

	appts, err := a.appointments.ListStartingBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: list appointments: %w", ErrStore, err)
	}

	blocked, err := a.blocked.ListIntersecting(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: list blocked intervals: %w", ErrStore, err)
	}

	sortByStart(appts)
	sortByStart(blocked)

	return &Obstructions{Appointments: appts, Blocked: blocked}, nil
}

func sortByStart(intervals []domain.Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
}
