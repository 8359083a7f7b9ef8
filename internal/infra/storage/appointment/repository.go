package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"client_id",
	"service_id",
	"start_datetime",
	"end_datetime",
	"status",
	"client_notes",
	"admin_notes",
	"cancellation_token",
	"payment_method",
	"payment_status",
	"payment_reference",
	"platform_booking_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет запись.
// Если в контексте передана активная транзакция, использует её: проверка пересечений
// и вставка должны выполняться в одной транзакции SERIALIZABLE.
// Нарушение ограничения EXCLUDE возвращается как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"client_id",
			"service_id",
			"start_datetime",
			"end_datetime",
			"status",
			"client_notes",
			"cancellation_token",
			"payment_method",
			"payment_status",
			"platform_booking_id",
		).
		Values(
			a.ID,
			a.ClientID,
			a.ServiceID,
			a.StartAt.UTC(),
			a.EndAt.UTC(),
			a.Status,
			a.ClientNotes,
			a.CancellationToken,
			a.PaymentMethod,
			a.PaymentStatus,
			a.PlatformBookingID,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if IsSlotConflict(err) {
			return nil, fmt.Errorf("%w: %w", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, builder, "GetByID")
}

// GetByIDAndToken получает запись по ID и секретному токену из письма
func (r *Repository) GetByIDAndToken(ctx context.Context, id uuid.UUID, token string) (*domain.Appointment, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "cancellation_token": token})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, builder, "GetByIDAndToken")
}

// List получает записи по фильтру, сортировка по времени начала
// Поддерживает фильтрацию по:
// - Периоду начала (From, To) - опционально
// - Статусу (Status) - опционально
// - Включению отмененных записей (IncludeCancelled)
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_datetime": filter.From.UTC()})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_datetime": filter.To.UTC()})
	}

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := builder.OrderBy("start_datetime ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListStartingBetween возвращает интервалы неотмененных записей с началом в [from, to)
func (r *Repository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_datetime", "end_datetime").
		From(table).
		Where(squirrel.GtOrEq{"start_datetime": from.UTC()}).
		Where(squirrel.Lt{"start_datetime": to.UTC()}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStartingBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStartingBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.Interval, 0)
	for rows.Next() {
		var i domain.Interval
		if err := rows.Scan(&i.Start, &i.End); err != nil {
			return nil, fmt.Errorf("%w: ListStartingBetween - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStartingBetween - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// ExistsOverlapping проверяет, есть ли неотмененная запись, пересекающая [start, end)
// Используется предикат пересечения самой БД: existing.start < end AND existing.end > start
func (r *Repository) ExistsOverlapping(ctx context.Context, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"start_datetime": end.UTC()}).
		Where(squirrel.Gt{"end_datetime": start.UTC()}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		if IsSlotConflict(err) {
			return false, fmt.Errorf("%w: %w", ErrSlotConflict, err)
		}
		return false, fmt.Errorf("%w: ExistsOverlapping - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{"status": status})
}

// UpdatePayment обновляет статус оплаты и ссылку на платеж
func (r *Repository) UpdatePayment(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, reference *string) error {
	return r.update(ctx, "UpdatePayment", id, map[string]interface{}{
		"payment_status":    status,
		"payment_reference": reference,
	})
}

// CancelWithPayment атомарно отменяет запись и помечает оплату
func (r *Repository) CancelWithPayment(ctx context.Context, id uuid.UUID, paymentStatus domain.PaymentStatus) error {
	return r.update(ctx, "CancelWithPayment", id, map[string]interface{}{
		"status":         domain.StatusCancelled,
		"payment_status": paymentStatus,
	})
}

// UpdateAdminNotes обновляет заметки администратора
func (r *Repository) UpdateAdminNotes(ctx context.Context, id uuid.UUID, notes *string) error {
	return r.update(ctx, "UpdateAdminNotes", id, map[string]interface{}{"admin_notes": notes})
}

// SetPlatformBookingID сохраняет ID бронирования на внешней платформе
func (r *Repository) SetPlatformBookingID(ctx context.Context, id uuid.UUID, bookingID string) error {
	return r.update(ctx, "SetPlatformBookingID", id, map[string]interface{}{"platform_booking_id": bookingID})
}

func (r *Repository) update(ctx context.Context, op string, id uuid.UUID, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if IsSlotConflict(err) {
			return fmt.Errorf("%w: %w", ErrSlotConflict, err)
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, builder squirrel.SelectBuilder, op string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}

	return a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.ServiceID,
		&a.StartAt,
		&a.EndAt,
		&a.Status,
		&a.ClientNotes,
		&a.AdminNotes,
		&a.CancellationToken,
		&a.PaymentMethod,
		&a.PaymentStatus,
		&a.PaymentReference,
		&a.PlatformBookingID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
