package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingplatform"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeRepo struct {
	services []*domain.Service
}

func (f *fakeRepo) ListActive(_ context.Context) ([]*domain.Service, error) {
	return f.services, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, serviceRepo.ErrServiceNotFound
}

type fakePlatform struct {
	items []bookingplatform.CatalogService
	err   error
	calls int
}

func (f *fakePlatform) ListCatalog(_ context.Context) ([]bookingplatform.CatalogService, error) {
	f.calls++
	return f.items, f.err
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

func localService(name string) *domain.Service {
	return &domain.Service{ID: uuid.New(), Name: name, DurationMinutes: 60, IsActive: true}
}

func TestService_LocalMode(t *testing.T) {
	massage := localService("Massage")
	svc := NewService(&fakeRepo{services: []*domain.Service{massage}}, nil, 0, logger.NewNop())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := svc.Get(context.Background(), massage.ID)
	require.NoError(t, err)
	assert.Equal(t, "Massage", got.Name)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_InactiveServiceNotFound(t *testing.T) {
	old := localService("Old")
	old.IsActive = false
	svc := NewService(&fakeRepo{services: []*domain.Service{old}}, nil, 0, logger.NewNop())

	_, err := svc.Get(context.Background(), old.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_PlatformCachedWithinTTL(t *testing.T) {
	platform := &fakePlatform{items: []bookingplatform.CatalogService{
		{CatalogID: "item-1", VariationID: "var-1", Name: "Facial", DurationMinutes: 90},
	}}
	clock := &fixedTime{now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}
	svc := NewService(&fakeRepo{}, platform, 5*time.Minute, logger.NewNop())
	svc.timeProvider = clock

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, PlatformServiceID("var-1"), list[0].ID)
	require.NotNil(t, list[0].PlatformVariationID)
	assert.Equal(t, "var-1", *list[0].PlatformVariationID)

	clock.now = clock.now.Add(4 * time.Minute)
	got, err := svc.Get(context.Background(), PlatformServiceID("var-1"))
	require.NoError(t, err)
	assert.Equal(t, 90, got.DurationMinutes)
	assert.Equal(t, 1, platform.calls)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, platform.calls)
}

func TestService_PlatformFallbackToLocal(t *testing.T) {
	massage := localService("Massage")
	platform := &fakePlatform{err: errors.New("platform down")}
	svc := NewService(&fakeRepo{services: []*domain.Service{massage}}, platform, 0, logger.NewNop())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, massage.ID, list[0].ID)

	got, err := svc.Get(context.Background(), massage.ID)
	require.NoError(t, err)
	assert.Equal(t, massage.ID, got.ID)
}

func TestPlatformServiceID_Stable(t *testing.T) {
	assert.Equal(t, PlatformServiceID("var-1"), PlatformServiceID("var-1"))
	assert.NotEqual(t, PlatformServiceID("var-1"), PlatformServiceID("var-2"))
}
