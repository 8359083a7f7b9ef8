package appointment

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotConflict возвращается, когда время пересекается с другой неотмененной записью
	ErrSlotConflict = errors.New("appointment.repository: time range overlaps another appointment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

// Коды ошибок PostgreSQL, означающие занятый слот
const (
	pqExclusionViolation   = "23P01" // ограничение EXCLUDE на пересечение интервалов
	pqSerializationFailure = "40001" // конкурентная транзакция SERIALIZABLE
)

// IsSlotConflict сообщает, что ошибка вызвана пересечением записей.
// Ошибка 40001 приходит и на COMMIT, поэтому функцию применяют и к ошибке транзакции.
func IsSlotConflict(err error) bool {
	if errors.Is(err, ErrSlotConflict) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqExclusionViolation || pqErr.Code == pqSerializationFailure
	}
	return false
}
