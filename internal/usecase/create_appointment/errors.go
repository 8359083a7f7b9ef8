package create_appointment

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceNotBookable возвращается, когда услугу нельзя забронировать онлайн
	ErrServiceNotBookable = errors.New("create_appointment: service is not bookable online")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrTooLateToBook возвращается, когда время записи раньше now + lead time
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrOutsideHours возвращается, когда время записи вне рабочего окна
	ErrOutsideHours = errors.New("create_appointment: requested time is outside business hours")

	// ErrSlotConflict возвращается, когда время уже занято; клиент должен выбрать слот заново
	ErrSlotConflict = errors.New("create_appointment: time slot is no longer available")

	// ErrPaymentFailed возвращается, когда списание не прошло; запись отменена
	ErrPaymentFailed = errors.New("create_appointment: payment failed")

	// ErrUpstreamUnavailable возвращается, когда внешняя платформа недоступна
	ErrUpstreamUnavailable = errors.New("create_appointment: booking platform unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// ValidationError ошибка валидации с описанием полей
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
