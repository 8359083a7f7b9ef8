package settings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "admin_settings"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Repository хранилище настроек ключ-значение
type Repository struct {
	db     dbmetrics.DBExecutor
	logger Logger
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor, logger Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Load читает все настройки и возвращает типизированную структуру.
// Отсутствующие и битые значения заменяются значениями по умолчанию.
func (r *Repository) Load(ctx context.Context) (domain.Settings, error) {
	values, err := r.Values(ctx)
	if err != nil {
		return domain.DefaultSettings(), err
	}

	settings, invalid := domain.SettingsFromValues(values)
	if len(invalid) > 0 {
		r.logger.Warn("Settings: invalid values for keys %v, defaults applied", invalid)
	}

	return settings, nil
}

// Values возвращает сырые значения настроек
func (r *Repository) Values(ctx context.Context) (map[string]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "value").From(table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Values - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Values - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: Values - scan row: %v", ErrScanRow, err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Values - rows error: %v", ErrScanRow, err)
	}

	return values, nil
}

// Set создает или обновляет значение настройки
func (r *Repository) Set(ctx context.Context, key, value string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Set - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
