package respond_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeAppointments struct {
	items map[uuid.UUID]*domain.Appointment
}

func (f *fakeAppointments) GetByIDAndToken(_ context.Context, id uuid.UUID, token string) (*domain.Appointment, error) {
	a, ok := f.items[id]
	if !ok || a.CancellationToken != token {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	f.items[id].Status = status
	return nil
}

type fakeClients struct{}

func (fakeClients) GetByID(_ context.Context, id uuid.UUID) (*domain.Client, error) {
	return &domain.Client{ID: id, FirstName: "Ann", Email: "ann@example.com"}, nil
}

type fakeCatalog struct{}

func (fakeCatalog) Get(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	return &domain.Service{ID: id, Name: "Massage", DurationMinutes: 60}, nil
}

type fakePlatform struct {
	cancelled []string
}

func (f *fakePlatform) CancelBooking(_ context.Context, bookingID string) error {
	f.cancelled = append(f.cancelled, bookingID)
	return nil
}

type fakePublisher struct {
	lists []events.List
}

func (f *fakePublisher) Publish(list events.List) error {
	f.lists = append(f.lists, list)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	uc          *UseCase
	repo        *fakeAppointments
	platform    *fakePlatform
	publisher   *fakePublisher
	appointment *domain.Appointment
}

func newFixture(status domain.AppointmentStatus) *fixture {
	appt := &domain.Appointment{
		ID:                uuid.New(),
		ClientID:          uuid.New(),
		ServiceID:         uuid.New(),
		StartAt:           time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC),
		EndAt:             time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
		Status:            status,
		CancellationToken: "tok-1",
		PlatformBookingID: ptr.Ptr("BOOK-1"),
	}
	f := &fixture{
		repo:        &fakeAppointments{items: map[uuid.UUID]*domain.Appointment{appt.ID: appt}},
		platform:    &fakePlatform{},
		publisher:   &fakePublisher{},
		appointment: appt,
	}
	f.uc = NewUseCase(f.repo, fakeClients{}, fakeCatalog{}, f.platform, f.publisher, passthroughTx{}, logger.NewNop())
	return f
}

func TestExecute_Accept(t *testing.T) {
	f := newFixture(domain.StatusPending)

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: f.appointment.ID, Token: "tok-1", Action: ActionAccept})
	require.NoError(t, err)
	assert.False(t, resp.AlreadyProcessed)
	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status)
	assert.Equal(t, domain.StatusConfirmed, f.repo.items[f.appointment.ID].Status)
	assert.Equal(t, "Ann", resp.Client.FirstName)

	require.Len(t, f.publisher.lists, 1)
	assert.Equal(t, []events.Type{events.AppointmentConfirmed}, f.publisher.lists[0].Types())
	assert.Empty(t, f.platform.cancelled)
}

func TestExecute_RejectCancelsPlatformBooking(t *testing.T) {
	f := newFixture(domain.StatusPending)

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: f.appointment.ID, Token: "tok-1", Action: ActionReject})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Appointment.Status)
	assert.Equal(t, []string{"BOOK-1"}, f.platform.cancelled)

	require.Len(t, f.publisher.lists, 1)
	assert.Equal(t, []events.Type{events.AppointmentRejected}, f.publisher.lists[0].Types())
}

func TestExecute_AlreadyProcessed(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: f.appointment.ID, Token: "tok-1", Action: ActionReject})
	require.NoError(t, err)
	assert.True(t, resp.AlreadyProcessed)
	assert.Equal(t, domain.StatusConfirmed, f.repo.items[f.appointment.ID].Status)
	assert.Empty(t, f.publisher.lists)
	assert.Empty(t, f.platform.cancelled)
}

func TestExecute_WrongTokenOrAction(t *testing.T) {
	f := newFixture(domain.StatusPending)

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: f.appointment.ID, Token: "other", Action: ActionAccept})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{AppointmentID: f.appointment.ID, Token: "tok-1", Action: "approve"})
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = f.uc.Execute(context.Background(), &Request{AppointmentID: f.appointment.ID, Action: ActionAccept})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, domain.StatusPending, f.repo.items[f.appointment.ID].Status)
}
