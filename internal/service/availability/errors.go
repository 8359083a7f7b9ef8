package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных правилах
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
