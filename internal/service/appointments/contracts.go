package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByIDAndToken(ctx context.Context, id uuid.UUID, token string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error
	UpdatePayment(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, reference *string) error
	UpdateAdminNotes(ctx context.Context, id uuid.UUID, notes *string) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// PlatformCanceller отмена бронирования на внешней платформе
type PlatformCanceller interface {
	CancelBooking(ctx context.Context, bookingID string) error
}

// PaymentRefunder возврат платежа
type PaymentRefunder interface {
	Refund(ctx context.Context, paymentID string) error
}

// EventPublisher интерфейс публикации событий после фиксации
type EventPublisher interface {
	Publish(list events.List) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
