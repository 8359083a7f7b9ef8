package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
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

// SlotSource источник слотов (локальный движок или внешняя платформа)
type SlotSource interface {
	Name() string
	Slots(ctx context.Context, q scheduling.Query) ([]domain.DaySlots, error)
}

// MetricsRecorder интерфейс метрик слотов
type MetricsRecorder interface {
	AddSlots(source string, available, unavailable int)
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
