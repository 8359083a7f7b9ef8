package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingplatform"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/payments"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

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
}

func (f *fakeSettings) Load(_ context.Context) (domain.Settings, error) {
	return f.settings, nil
}

type fakeClients struct {
	mu      sync.Mutex
	byEmail map[string]*domain.Client
}

func (f *fakeClients) UpsertByEmail(_ context.Context, c *domain.Client) (*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byEmail == nil {
		f.byEmail = make(map[string]*domain.Client)
	}
	if existing, ok := f.byEmail[c.Email]; ok {
		existing.FirstName, existing.LastName, existing.Phone = c.FirstName, c.LastName, c.Phone
		copied := *existing
		return &copied, nil
	}
	c.ID = uuid.New()
	f.byEmail[c.Email] = c
	copied := *c
	return &copied, nil
}

func (f *fakeClients) SetPlatformCustomerID(_ context.Context, id uuid.UUID, customerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byEmail {
		if c.ID == id {
			c.PlatformCustomerID = &customerID
		}
	}
	return nil
}

// fakeAppointments хранит записи в памяти; Create ведет себя как ограничение EXCLUDE
type fakeAppointments struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Appointment
	// afterCheck вызывается из ExistsOverlapping, чтобы синхронизировать конкурентные запросы
	afterCheck func()
	// checkErr имитирует ошибку БД при проверке пересечений
	checkErr error
}

func newFakeAppointments() *fakeAppointments {
	return &fakeAppointments{items: make(map[uuid.UUID]*domain.Appointment)}
}

func (f *fakeAppointments) ExistsOverlapping(_ context.Context, start, end time.Time) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	f.mu.Lock()
	exists := f.overlapsLocked(start, end)
	f.mu.Unlock()
	if f.afterCheck != nil {
		f.afterCheck()
	}
	return exists, nil
}

func (f *fakeAppointments) overlapsLocked(start, end time.Time) bool {
	for _, a := range f.items {
		if a.IsActive() && domain.Overlaps(a.StartAt, a.EndAt, start, end) {
			return true
		}
	}
	return false
}

func (f *fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlapsLocked(a.StartAt, a.EndAt) {
		return nil, appointmentRepo.ErrSlotConflict
	}
	copied := *a
	f.items[a.ID] = &copied
	return a, nil
}

func (f *fakeAppointments) get(id uuid.UUID) domain.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.items[id]
}

func (f *fakeAppointments) UpdatePayment(_ context.Context, id uuid.UUID, status domain.PaymentStatus, reference *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[id].PaymentStatus = status
	f.items[id].PaymentReference = reference
	return nil
}

func (f *fakeAppointments) CancelWithPayment(_ context.Context, id uuid.UUID, paymentStatus domain.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[id].Status = domain.StatusCancelled
	f.items[id].PaymentStatus = paymentStatus
	return nil
}

func (f *fakeAppointments) SetPlatformBookingID(_ context.Context, id uuid.UUID, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[id].PlatformBookingID = &bookingID
	return nil
}

type localGuards struct {
	guard scheduling.ConflictGuard
}

func (g localGuards) For(_ *domain.Service) (scheduling.ConflictGuard, error) {
	return g.guard, nil
}

// passthroughTx выполняет fn без реальной транзакции; commitErr имитирует ошибку COMMIT
type passthroughTx struct {
	commitErr error
}

type inTxKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(inTxKey{}).(bool)
	return v
}

func (p *passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		return err
	}
	return p.commitErr
}

// fakeSearcher платформа, предлагающая фиксированные времена начала
type fakeSearcher struct {
	mu       sync.Mutex
	starts   []time.Time
	calls    int
	calledTx bool
}

func (f *fakeSearcher) SearchAvailability(ctx context.Context, from, to time.Time, _ string, _ int) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if inTx(ctx) {
		f.calledTx = true
	}
	var result []time.Time
	for _, s := range f.starts {
		if !s.Before(from) && s.Before(to) {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakePublisher struct {
	mu    sync.Mutex
	lists []events.List
}

func (f *fakePublisher) Publish(list events.List) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, list)
	return nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	conflicts map[string]int
	payments  int
}

func (f *fakeMetrics) IncBookingConflict(stage string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflicts == nil {
		f.conflicts = make(map[string]int)
	}
	f.conflicts[stage]++
}

func (f *fakeMetrics) IncPaymentFailure() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments++
}

type fakePayments struct {
	requests []payments.ChargeRequest
	err      error
}

func (f *fakePayments) Charge(_ context.Context, req payments.ChargeRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return "pi_123", nil
}

type fakePlatform struct {
	bookings  []bookingplatform.CreateBookingRequest
	cancelled []string
	err       error
}

func (f *fakePlatform) FindOrCreateCustomer(_ context.Context, _ *domain.Client) (string, error) {
	return "CUST-1", nil
}

func (f *fakePlatform) CreateBooking(_ context.Context, req bookingplatform.CreateBookingRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.bookings = append(f.bookings, req)
	return "BOOK-1", nil
}

func (f *fakePlatform) CancelBooking(_ context.Context, bookingID string) error {
	f.cancelled = append(f.cancelled, bookingID)
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

var errBoom = errors.New("boom")

type fixture struct {
	uc           *UseCase
	service      *domain.Service
	settings     *fakeSettings
	clients      *fakeClients
	appointments *fakeAppointments
	tx           *passthroughTx
	publisher    *fakePublisher
	metrics      *fakeMetrics
	payments     *fakePayments
	zone         *scheduling.Zone
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	zone, err := scheduling.NewZone("America/Chicago")
	require.NoError(t, err)

	price := int64(9500)
	f := &fixture{
		service:      &domain.Service{ID: uuid.New(), Name: "Massage", DurationMinutes: 60, PriceCents: &price, IsActive: true},
		settings:     &fakeSettings{settings: domain.DefaultSettings()},
		clients:      &fakeClients{},
		appointments: newFakeAppointments(),
		tx:           &passthroughTx{},
		publisher:    &fakePublisher{},
		metrics:      &fakeMetrics{},
		payments:     &fakePayments{},
		zone:         zone,
	}
	f.settings.settings.NotificationEmail = "owner@example.com"

	f.uc = f.build(nil)
	return f
}

func (f *fixture) build(platform PlatformBooker) *UseCase {
	uc := NewUseCase(Dependencies{
		Catalog:         &fakeCatalog{service: f.service},
		Settings:        f.settings,
		ClientRepo:      f.clients,
		AppointmentRepo: f.appointments,
		Guards:          localGuards{guard: scheduling.NewLocalGuard(f.appointments)},
		Platform:        platform,
		Payments:        f.payments,
		Publisher:       f.publisher,
		TxManager:       f.tx,
		Zone:            f.zone,
		Metrics:         f.metrics,
		Logger:          logger.NewNop(),
	})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)}
	return uc
}

func (f *fixture) request() *Request {
	return &Request{
		ServiceID: f.service.ID,
		Date:      "2026-03-02",
		Time:      "10:00",
		Client: ClientInput{
			FirstName: "Ann",
			LastName:  "Lee",
			Email:     "ann@example.com",
			Phone:     "(312) 555-0100",
		},
		PaymentMethod: "in_person",
	}
}
