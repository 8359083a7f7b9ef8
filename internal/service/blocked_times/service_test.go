package blocked_times

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	blockedRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/blocked"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/blocked_times/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeBlocked struct {
	items []*domain.BlockedInterval
	from  time.Time
}

func (f *fakeBlocked) ListEndingAfter(_ context.Context, from time.Time) ([]*domain.BlockedInterval, error) {
	f.from = from
	result := make([]*domain.BlockedInterval, 0)
	for _, b := range f.items {
		if b.EndAt.After(from) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBlocked) Create(_ context.Context, b *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	b.ID = uuid.New()
	f.items = append(f.items, b)
	return b, nil
}

func (f *fakeBlocked) Delete(_ context.Context, id uuid.UUID) error {
	for i, b := range f.items {
		if b.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return blockedRepo.ErrBlockedIntervalNotFound
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func newService(t *testing.T) (*Service, *fakeBlocked) {
	t.Helper()
	zone, err := scheduling.NewZone(domain.DefaultBusinessTimeZone)
	require.NoError(t, err)

	repo := &fakeBlocked{}
	svc := NewService(repo, zone, logger.NewNop())
	svc.timeProvider = fixedTime{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return svc, repo
}

func TestCreate_FullDayRangeAcrossDST(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), &models.CreateRequest{
		BlockType: models.BlockFullDay,
		StartDate: "2026-03-07",
		EndDate:   "2026-03-08",
		Reason:    ptr.Ptr("vacation"),
	})
	require.NoError(t, err)

	assert.True(t, created.IsAllDay)
	assert.Equal(t, time.Date(2026, 3, 7, 6, 0, 0, 0, time.UTC), created.StartDatetime.UTC())
	// полночь после 8 марта уже по CDT (UTC-5)
	assert.Equal(t, time.Date(2026, 3, 9, 5, 0, 0, 0, time.UTC), created.EndDatetime.UTC())
}

func TestCreate_TimeRange(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), &models.CreateRequest{
		BlockType: models.BlockTimeRange,
		StartDate: "2026-03-02",
		StartTime: "12:00",
		EndTime:   "13:30",
	})
	require.NoError(t, err)

	assert.False(t, created.IsAllDay)
	assert.Equal(t, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC), created.StartDatetime.UTC())
	assert.Equal(t, time.Date(2026, 3, 2, 19, 30, 0, 0, time.UTC), created.EndDatetime.UTC())
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateRequest
	}{
		{name: "end before start", req: models.CreateRequest{BlockType: models.BlockTimeRange, StartDate: "2026-03-02", StartTime: "13:00", EndTime: "12:00"}},
		{name: "empty range", req: models.CreateRequest{BlockType: models.BlockTimeRange, StartDate: "2026-03-02", StartTime: "13:00", EndTime: "13:00"}},
		{name: "end date before start date", req: models.CreateRequest{BlockType: models.BlockFullDay, StartDate: "2026-03-05", EndDate: "2026-03-02"}},
		{name: "missing times", req: models.CreateRequest{BlockType: models.BlockTimeRange, StartDate: "2026-03-02"}},
		{name: "bad date", req: models.CreateRequest{BlockType: models.BlockFullDay, StartDate: "March 2"}},
		{name: "unknown type", req: models.CreateRequest{BlockType: "week", StartDate: "2026-03-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)

			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.items)
		})
	}
}

func TestListUpcoming_SkipsFinished(t *testing.T) {
	svc, repo := newService(t)
	now := svc.timeProvider.Now()
	repo.items = []*domain.BlockedInterval{
		{ID: uuid.New(), StartAt: now.Add(-48 * time.Hour), EndAt: now.Add(-24 * time.Hour)},
		{ID: uuid.New(), StartAt: now.Add(-time.Hour), EndAt: now.Add(time.Hour)},
		{ID: uuid.New(), StartAt: now.Add(24 * time.Hour), EndAt: now.Add(48 * time.Hour)},
	}

	items, err := svc.ListUpcoming(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, now, repo.from)
}

func TestDelete(t *testing.T) {
	svc, repo := newService(t)
	created, err := svc.Create(context.Background(), &models.CreateRequest{BlockType: models.BlockFullDay, StartDate: "2026-03-02"})
	require.NoError(t, err)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, repo.items)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrBlockedTimeNotFound)
}
