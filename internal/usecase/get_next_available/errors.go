package get_next_available

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_next_available: service not found")

	// ErrServiceNotBookable возвращается, когда услугу нельзя забронировать онлайн
	ErrServiceNotBookable = errors.New("get_next_available: service is not bookable online")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_next_available: invalid input data")

	// ErrUpstreamUnavailable возвращается, когда внешняя платформа недоступна
	ErrUpstreamUnavailable = errors.New("get_next_available: booking platform unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_next_available: internal error")
)
