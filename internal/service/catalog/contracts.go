package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingplatform"
)

// ServiceRepository локальный каталог услуг
type ServiceRepository interface {
	ListActive(ctx context.Context) ([]*domain.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// PlatformCatalog каталог внешней платформы бронирования
type PlatformCatalog interface {
	ListCatalog(ctx context.Context) ([]bookingplatform.CatalogService, error)
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
