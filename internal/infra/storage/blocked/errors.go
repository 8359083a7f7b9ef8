package blocked

import "errors"

var (
	// ErrBlockedIntervalNotFound возвращается, когда блокировка не найдена
	ErrBlockedIntervalNotFound = errors.New("blocked.repository: blocked interval not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blocked.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blocked.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blocked.repository: failed to scan row")
)
