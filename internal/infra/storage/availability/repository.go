package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "availability"

// Repository репозиторий недельного расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRule возвращает правило для дня недели или nil, если оно не настроено
func (r *Repository) GetRule(ctx context.Context, dayOfWeek int) (*domain.WeeklyAvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "is_active", "start_time", "end_time", "updated_at").
		From(table).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - build select query: %v", ErrBuildQuery, err)
	}

	var rule domain.WeeklyAvailabilityRule
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.DayOfWeek,
		&rule.IsActive,
		&rule.StartTime,
		&rule.EndTime,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - scan rule: %w", ErrScanRow, err)
	}

	rule.UpdatedAt = updatedAt.Time
	return &rule, nil
}

// List возвращает все настроенные правила по порядку дней недели
func (r *Repository) List(ctx context.Context) ([]*domain.WeeklyAvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "is_active", "start_time", "end_time", "updated_at").
		From(table).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.WeeklyAvailabilityRule, 0, 7)
	for rows.Next() {
		var rule domain.WeeklyAvailabilityRule
		var updatedAt sql.NullTime
		if err := rows.Scan(&rule.DayOfWeek, &rule.IsActive, &rule.StartTime, &rule.EndTime, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Upsert создает или обновляет правило дня недели
func (r *Repository) Upsert(ctx context.Context, rule *domain.WeeklyAvailabilityRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("day_of_week", "is_active", "start_time", "end_time").
		Values(rule.DayOfWeek, rule.IsActive, rule.StartTime, rule.EndTime).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			is_active = EXCLUDED.is_active,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
