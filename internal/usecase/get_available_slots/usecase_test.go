package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Name() string {
	return "mock"
}

func (m *mockSource) Slots(ctx context.Context, q scheduling.Query) ([]domain.DaySlots, error) {
	args := m.Called(ctx, q)
	days, _ := args.Get(0).([]domain.DaySlots)
	return days, args.Error(1)
}

type fakeCatalog struct {
	service *domain.Service
}

func (f *fakeCatalog) Get(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, catalog.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeSettings struct {
	settings domain.Settings
	err      error
}

func (f *fakeSettings) Load(_ context.Context) (domain.Settings, error) {
	return f.settings, f.err
}

type fakeMetrics struct {
	available, unavailable int
}

func (f *fakeMetrics) AddSlots(_ string, available, unavailable int) {
	f.available += available
	f.unavailable += unavailable
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	uc      *UseCase
	source  *mockSource
	metrics *fakeMetrics
	service *domain.Service
	zone    *scheduling.Zone
}

func newFixture(t *testing.T, settings *fakeSettings) *fixture {
	t.Helper()
	zone, err := scheduling.NewZone("America/Chicago")
	require.NoError(t, err)

	service := &domain.Service{ID: uuid.New(), Name: "Massage", DurationMinutes: 60, IsActive: true}
	source := &mockSource{}
	metrics := &fakeMetrics{}

	uc := NewUseCase(&fakeCatalog{service: service}, settings, source, zone, metrics, logger.NewNop())
	uc.timeProvider = &fixedTime{now: time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, source: source, metrics: metrics, service: service, zone: zone}
}

func TestExecute_ReturnsSlotsForDate(t *testing.T) {
	f := newFixture(t, &fakeSettings{settings: domain.DefaultSettings()})
	date, err := f.zone.ParseDate("2026-03-02")
	require.NoError(t, err)

	f.source.On("Slots", mock.Anything, mock.MatchedBy(func(q scheduling.Query) bool {
		return q.Days == 1 && q.From.Equal(date) && q.Service.ID == f.service.ID && q.Settings.BufferMinutes == 15
	})).Return([]domain.DaySlots{{
		Date: date,
		Slots: []domain.Slot{
			{Time: "09:00", Available: false},
			{Time: "09:30", Available: true},
			{Time: "10:00", Available: true},
		},
	}}, nil).Once()

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: f.service.ID, Date: "2026-03-02"})
	require.NoError(t, err)
	assert.True(t, resp.Date.Equal(date))
	assert.Len(t, resp.Slots, 3)
	assert.Equal(t, 2, f.metrics.available)
	assert.Equal(t, 1, f.metrics.unavailable)
	f.source.AssertExpectations(t)
}

func TestExecute_SettingsErrorFallsBackToDefaults(t *testing.T) {
	f := newFixture(t, &fakeSettings{err: errors.New("db down")})

	f.source.On("Slots", mock.Anything, mock.MatchedBy(func(q scheduling.Query) bool {
		return q.Settings == domain.DefaultSettings()
	})).Return([]domain.DaySlots{{Slots: []domain.Slot{}}}, nil).Once()

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: f.service.ID, Date: "2026-03-02"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t, &fakeSettings{settings: domain.DefaultSettings()})

	_, err := f.uc.Execute(context.Background(), &Request{Date: "2026-03-02"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: f.service.ID, Date: "03/02/2026"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: uuid.New(), Date: "2026-03-02"})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	f.source.AssertNotCalled(t, "Slots", mock.Anything, mock.Anything)
}

func TestExecute_SourceErrors(t *testing.T) {
	tests := []struct {
		name      string
		sourceErr error
		want      error
	}{
		{"upstream", fmt.Errorf("%w: timeout", scheduling.ErrUpstream), ErrUpstreamUnavailable},
		{"not bookable", scheduling.ErrServiceNotBookable, ErrServiceNotBookable},
		{"store", fmt.Errorf("%w: boom", scheduling.ErrStore), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &fakeSettings{settings: domain.DefaultSettings()})
			f.source.On("Slots", mock.Anything, mock.Anything).Return(nil, tt.sourceErr).Once()

			_, err := f.uc.Execute(context.Background(), &Request{ServiceID: f.service.ID, Date: "2026-03-02"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
