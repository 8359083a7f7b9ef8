package availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// RuleRepository интерфейс репозитория недельного расписания
type RuleRepository interface {
	List(ctx context.Context) ([]*domain.WeeklyAvailabilityRule, error)
	Upsert(ctx context.Context, rule *domain.WeeklyAvailabilityRule) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
