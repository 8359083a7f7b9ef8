package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeSettings struct {
	values map[string]string
}

func (f *fakeSettings) Load(_ context.Context) (domain.Settings, error) {
	settings, _ := domain.SettingsFromValues(f.values)
	return settings, nil
}

func (f *fakeSettings) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService() (*Service, *fakeSettings) {
	repo := &fakeSettings{values: map[string]string{}}
	return NewService(repo, passthroughTx{}, logger.NewNop()), repo
}

func TestGet_Defaults(t *testing.T) {
	svc, _ := newService()

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, got.BufferTimeMinutes)
	assert.Equal(t, 30, got.SlotIntervalMinutes)
	assert.Equal(t, 60, got.MinBookingNoticeMinutes)
	assert.True(t, got.RequireApproval)
}

func TestUpdate_NormalizesJSONScalars(t *testing.T) {
	svc, repo := newService()

	got, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{Values: map[string]interface{}{
		domain.SettingBufferTimeMinutes: float64(20),
		domain.SettingRequireApproval:   false,
		domain.SettingNotificationEmail: "owner@example.com",
	}})
	require.NoError(t, err)

	assert.Equal(t, "20", repo.values[domain.SettingBufferTimeMinutes])
	assert.Equal(t, "false", repo.values[domain.SettingRequireApproval])
	assert.Equal(t, 20, got.BufferTimeMinutes)
	assert.False(t, got.RequireApproval)
	assert.Equal(t, "owner@example.com", got.NotificationEmail)
}

func TestUpdate_RejectsWholeBatch(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{Values: map[string]interface{}{
		domain.SettingBufferTimeMinutes:  float64(20),
		domain.SettingSlotCadenceMinutes: float64(1),
	}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.values)

	_, err = svc.Update(context.Background(), &models.UpdateSettingsRequest{Values: map[string]interface{}{"theme": "dark"}})
	assert.ErrorIs(t, err, ErrUnknownSetting)

	_, err = svc.Update(context.Background(), &models.UpdateSettingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
