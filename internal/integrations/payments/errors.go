package payments

import "errors"

var (
	// ErrDeclined возвращается, когда процессор отклонил карту
	ErrDeclined = errors.New("payments: card declined")

	// ErrNotCompleted возвращается, если платеж не перешел в статус succeeded
	ErrNotCompleted = errors.New("payments: payment not completed")

	// ErrProcessor возвращается при недоступности или ошибке процессора
	ErrProcessor = errors.New("payments: processor error")
)
