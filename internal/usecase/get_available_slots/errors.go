package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceNotBookable возвращается, когда услугу нельзя забронировать онлайн
	ErrServiceNotBookable = errors.New("get_available_slots: service is not bookable online")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrUpstreamUnavailable возвращается, когда внешняя платформа недоступна
	ErrUpstreamUnavailable = errors.New("get_available_slots: booking platform unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
