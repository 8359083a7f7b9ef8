package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingplatform"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/payments"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// SettingsLoader интерфейс загрузки настроек расписания
type SettingsLoader interface {
	Load(ctx context.Context) (domain.Settings, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	UpsertByEmail(ctx context.Context, c *domain.Client) (*domain.Client, error)
	SetPlatformCustomerID(ctx context.Context, id uuid.UUID, customerID string) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, reference *string) error
	CancelWithPayment(ctx context.Context, id uuid.UUID, paymentStatus domain.PaymentStatus) error
	SetPlatformBookingID(ctx context.Context, id uuid.UUID, bookingID string) error
}

// Guards выбор проверки конфликтов для услуги
type Guards interface {
	For(service *domain.Service) (scheduling.ConflictGuard, error)
}

// PlatformBooker интерфейс внешней платформы бронирования (nil в локальном режиме)
type PlatformBooker interface {
	FindOrCreateCustomer(ctx context.Context, client *domain.Client) (string, error)
	CreateBooking(ctx context.Context, req bookingplatform.CreateBookingRequest) (string, error)
	CancelBooking(ctx context.Context, bookingID string) error
}

// PaymentProcessor интерфейс платежного провайдера
type PaymentProcessor interface {
	Charge(ctx context.Context, req payments.ChargeRequest) (string, error)
}

// EventPublisher интерфейс публикации событий после фиксации
type EventPublisher interface {
	Publish(list events.List) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс метрик бронирования
type MetricsRecorder interface {
	IncBookingConflict(stage string)
	IncPaymentFailure()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
