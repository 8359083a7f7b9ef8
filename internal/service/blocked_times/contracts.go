package blocked_times

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BlockedRepository интерфейс репозитория блокировок
type BlockedRepository interface {
	ListEndingAfter(ctx context.Context, from time.Time) ([]*domain.BlockedInterval, error)
	Create(ctx context.Context, b *domain.BlockedInterval) (*domain.BlockedInterval, error)
	Delete(ctx context.Context, id uuid.UUID) error
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
