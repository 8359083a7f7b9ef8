package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SourcePlatform имя источника слотов внешней платформы
const SourcePlatform = "platform"

// PlatformSource приводит поиск доступности платформы к DaySlots.
// Каждое начало от платформы становится доступным слотом на своей локальной дате.
type PlatformSource struct {
	searcher AvailabilitySearcher
	zone     *Zone
}

// NewPlatformSource создает адаптер внешней платформы
func NewPlatformSource(searcher AvailabilitySearcher, zone *Zone) *PlatformSource {
	return &PlatformSource{searcher: searcher, zone: zone}
}

// Name возвращает имя источника
func (s *PlatformSource) Name() string {
	return SourcePlatform
}

// Slots делает один запрос к платформе на все дни
func (s *PlatformSource) Slots(ctx context.Context, q Query) ([]domain.DaySlots, error) {
	if q.Service == nil || q.Service.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if q.Service.PlatformVariationID == nil || *q.Service.PlatformVariationID == "" {
		return nil, fmt.Errorf("%w: service %s has no platform variation", ErrServiceNotBookable, q.Service.ID)
	}

	days := q.Days
	if days < 1 {
		days = 1
	}

	// Границы берем по локальным суткам, а не по UTC
	from := s.zone.Date(q.From)
	to := s.zone.AddDays(from, days)

	starts, err := s.searcher.SearchAvailability(ctx, from, to, *q.Service.PlatformVariationID, q.Service.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	earliest := q.Now.Add(time.Duration(q.Settings.LeadTimeMinutes) * time.Minute)

	byDay := make(map[string]map[types.TimeString]bool, days)
	for _, start := range starts {
		if start.Before(from) || !start.Before(to) {
			continue
		}
		date, t := s.zone.ToLocal(start)
		key := date.Format(domain.DateFormat)
		if byDay[key] == nil {
			byDay[key] = make(map[types.TimeString]bool)
		}
		// Повторы объединяем: слот доступен, если хотя бы один экземпляр доступен
		byDay[key][t] = byDay[key][t] || !start.Before(earliest)
	}

	result := make([]domain.DaySlots, 0, days)
	for i := 0; i < days; i++ {
		date := s.zone.AddDays(from, i)
		result = append(result, domain.DaySlots{Date: date, Slots: toSortedSlots(byDay[date.Format(domain.DateFormat)])})
	}

	return result, nil
}

func toSortedSlots(times map[types.TimeString]bool) []domain.Slot {
	slots := make([]domain.Slot, 0, len(times))
	for t, available := range times {
		slots = append(slots, domain.Slot{Time: t, Available: available})
	}
	// HH:MM сортируется лексикографически
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})
	return slots
}
