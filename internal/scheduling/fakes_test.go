package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func chicago(t *testing.T) *Zone {
	t.Helper()
	zone, err := NewZone("America/Chicago")
	require.NoError(t, err)
	return zone
}

// at возвращает момент date + HH:MM в бизнес-зоне
func at(t *testing.T, zone *Zone, date string, clock string) time.Time {
	t.Helper()
	d, err := zone.ParseDate(date)
	require.NoError(t, err)
	instant, err := zone.LocalWallClock(d, types.TimeString(clock))
	require.NoError(t, err)
	return instant
}

type fakeRules struct {
	rules map[int]*domain.WeeklyAvailabilityRule
	err   error
}

func (f *fakeRules) GetRule(_ context.Context, day int) (*domain.WeeklyAvailabilityRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rules[day], nil
}

func weekdays(start, end string) *fakeRules {
	rules := make(map[int]*domain.WeeklyAvailabilityRule)
	for day := 1; day <= 5; day++ {
		rules[day] = &domain.WeeklyAvailabilityRule{
			DayOfWeek: day,
			IsActive:  true,
			StartTime: types.TimeString(start),
			EndTime:   types.TimeString(end),
		}
	}
	return &fakeRules{rules: rules}
}

type fakeAppointments struct {
	mu    sync.Mutex
	items []*domain.Appointment
}

func (f *fakeAppointments) add(start, end time.Time, status domain.AppointmentStatus) *domain.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := &domain.Appointment{StartAt: start, EndAt: end, Status: status}
	f.items = append(f.items, a)
	return a
}

func (f *fakeAppointments) ListStartingBetween(_ context.Context, from, to time.Time) ([]domain.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Interval
	for _, a := range f.items {
		if a.Status == domain.StatusCancelled {
			continue
		}
		if !a.StartAt.Before(from) && a.StartAt.Before(to) {
			result = append(result, a.Interval())
		}
	}
	return result, nil
}

func (f *fakeAppointments) ExistsOverlapping(_ context.Context, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.items {
		if a.Status != domain.StatusCancelled && domain.Overlaps(a.StartAt, a.EndAt, start, end) {
			return true, nil
		}
	}
	return false, nil
}

type fakeBlocked struct {
	items []domain.Interval
}

func (f *fakeBlocked) ListIntersecting(_ context.Context, from, to time.Time) ([]domain.Interval, error) {
	var result []domain.Interval
	for _, b := range f.items {
		if domain.Overlaps(b.Start, b.End, from, to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeSearcher struct {
	starts []time.Time
	err    error
	calls  int
}

func (f *fakeSearcher) SearchAvailability(_ context.Context, from, to time.Time, _ string, _ int) ([]time.Time, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var result []time.Time
	for _, s := range f.starts {
		if !s.Before(from) && s.Before(to) {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeOverlapChecker struct {
	err error
}

func (f *fakeOverlapChecker) ExistsOverlapping(_ context.Context, _, _ time.Time) (bool, error) {
	return false, f.err
}

func newLocalSource(zone *Zone, rules RuleStore, appts AppointmentStore, blocked BlockedStore) *LocalSource {
	return NewLocalSource(
		NewResolver(rules, zone, logger.NewNop()),
		NewAggregator(appts, blocked, zone),
		zone,
	)
}

func service60() *domain.Service {
	return &domain.Service{Name: "Swedish massage", DurationMinutes: 60, IsActive: true}
}

func availableTimes(slots []domain.Slot) []string {
	result := make([]string, 0)
	for _, s := range slots {
		if s.Available {
			result = append(result, s.Time.String())
		}
	}
	return result
}

func unavailableTimes(slots []domain.Slot) []string {
	result := make([]string, 0)
	for _, s := range slots {
		if !s.Available {
			result = append(result, s.Time.String())
		}
	}
	return result
}
