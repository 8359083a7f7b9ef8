package respond_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена или токен не совпадает
	ErrAppointmentNotFound = errors.New("respond_appointment: appointment not found or invalid token")

	// ErrInvalidAction возвращается при действии, отличном от accept и reject
	ErrInvalidAction = errors.New("respond_appointment: invalid action")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("respond_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("respond_appointment: internal error")
)
