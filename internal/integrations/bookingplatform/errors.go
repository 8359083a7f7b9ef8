package bookingplatform

import "errors"

var (
	// ErrNotFound возвращается, когда объект не найден на платформе
	ErrNotFound = errors.New("bookingplatform client: not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingplatform client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе платформы
	ErrInvalidResponse = errors.New("bookingplatform client: invalid response")

	// ErrUnavailable возвращается, когда платформа недоступна (сеть, таймаут, 5xx)
	ErrUnavailable = errors.New("bookingplatform client: platform unavailable")

	// ErrRejected возвращается, когда платформа отклонила запрос (4xx)
	ErrRejected = errors.New("bookingplatform client: request rejected")
)
