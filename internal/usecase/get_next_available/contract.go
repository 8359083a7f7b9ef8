package get_next_available

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// SettingsLoader интерфейс загрузки настроек расписания
type SettingsLoader interface {
	Load(ctx context.Context) (domain.Settings, error)
}

// NextAvailableFinder поиск ближайшей даты со свободным слотом
type NextAvailableFinder interface {
	Find(ctx context.Context, service *domain.Service, from time.Time, settings domain.Settings, now time.Time) (*time.Time, error)
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
