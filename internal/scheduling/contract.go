package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// RuleStore источник недельного расписания
type RuleStore interface {
	// GetRule возвращает правило для дня недели или nil, если правило не настроено
	GetRule(ctx context.Context, dayOfWeek int) (*domain.WeeklyAvailabilityRule, error)
}

// AppointmentStore источник записей для агрегатора препятствий
type AppointmentStore interface {
	// ListStartingBetween возвращает неотмененные записи с началом в [from, to), по возрастанию начала
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Interval, error)
}

// BlockedStore источник заблокированных интервалов
type BlockedStore interface {
	// ListIntersecting возвращает интервалы, пересекающиеся с [from, to), по возрастанию начала
	ListIntersecting(ctx context.Context, from, to time.Time) ([]domain.Interval, error)
}

// OverlapChecker проверка пересечений при фиксации записи
type OverlapChecker interface {
	// ExistsOverlapping true, если есть неотмененная запись, пересекающая [start, end)
	ExistsOverlapping(ctx context.Context, start, end time.Time) (bool, error)
}

// AvailabilitySearcher массовый поиск свободного времени на внешней платформе
type AvailabilitySearcher interface {
	// SearchAvailability возвращает начала свободных слотов в [from, to)
	SearchAvailability(ctx context.Context, from, to time.Time, variationID string, durationMinutes int) ([]time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Query запрос слотов на диапазон календарных дней
type Query struct {
	Service  *domain.Service
	From     time.Time // календарная дата (локальная)
	Days     int       // количество дней, минимум 1
	Settings domain.Settings
	Now      time.Time
}

// SlotSource источник слотов (локальный расчет или внешняя платформа).
// Возвращает по одному DaySlots на день по порядку дат, слоты по возрастанию времени.
type SlotSource interface {
	Name() string
	Slots(ctx context.Context, q Query) ([]domain.DaySlots, error)
}

// ConflictGuard окончательная проверка перед сохранением записи (внутри транзакции)
type ConflictGuard interface {
	Check(ctx context.Context, start, end time.Time) error
}

// Prechecker проверка, которую выполняют до открытия транзакции (сетевые запросы)
type Prechecker interface {
	Precheck(ctx context.Context, start, end time.Time) error
}
