package blocked

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "blocked_times"

// Repository репозиторий заблокированных интервалов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListIntersecting возвращает интервалы, пересекающие [from, to), по возрастанию начала
func (r *Repository) ListIntersecting(ctx context.Context, from, to time.Time) ([]domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_datetime", "end_datetime").
		From(table).
		Where(squirrel.Lt{"start_datetime": to.UTC()}).
		Where(squirrel.Gt{"end_datetime": from.UTC()}).
		OrderBy("start_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.Interval, 0)
	for rows.Next() {
		var i domain.Interval
		if err := rows.Scan(&i.Start, &i.End); err != nil {
			return nil, fmt.Errorf("%w: ListIntersecting - scan row: %w", ErrScanRow, err)
		}
		intervals = append(intervals, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

// ListEndingAfter возвращает блокировки, которые еще не закончились к моменту from
func (r *Repository) ListEndingAfter(ctx context.Context, from time.Time) ([]*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_datetime", "end_datetime", "reason", "is_all_day", "created_at").
		From(table).
		Where(squirrel.Gt{"end_datetime": from.UTC()}).
		OrderBy("start_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEndingAfter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEndingAfter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedInterval, 0)
	for rows.Next() {
		var b domain.BlockedInterval
		var createdAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.StartAt, &b.EndAt, &b.Reason, &b.IsAllDay, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListEndingAfter - scan row: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEndingAfter - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Create создает блокировку
func (r *Repository) Create(ctx context.Context, b *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "start_datetime", "end_datetime", "reason", "is_all_day").
		Values(b.ID, b.StartAt.UTC(), b.EndAt.UTC(), b.Reason, b.IsAllDay).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time

	return b, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedIntervalNotFound
	}

	return nil
}
