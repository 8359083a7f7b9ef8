package settings

import "errors"

var (
	// ErrUnknownSetting возвращается при попытке изменить неизвестный ключ
	ErrUnknownSetting = errors.New("settings: unknown setting")

	// ErrInvalidInput возвращается при некорректных значениях
	ErrInvalidInput = errors.New("settings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
