package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	"github.com/sgurenkov/VLM-BookingService/pkg/dbmetrics"
	"github.com/sgurenkov/VLM-BookingService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие нарушение констрейнта уникальности
// или exclusion-констрейнта непересечения интервалов
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

var bookingColumns = []string{
	"id",
	"service_id",
	"customer_id",
	"civil_date",
	"start_at",
	"end_at",
	"status",
	"created_via",
	"notes",
	"manage_token",
	"service_name",
	"service_price",
	"customer_name",
	"customer_phone",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование со статусом confirmed.
// Если в контексте передана активная транзакция, использует её.
//
// Гарантия непересечения подтвержденных интервалов обеспечивается
// exclusion-констрейнтом в БД: при его нарушении возвращается ErrSlotConflict,
// отличимый от прочих ошибок записи. Прикладная предварительная проверка
// пересечений - только оптимизация, последнее слово всегда за констрейнтом.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"customer_id",
			"civil_date",
			"start_at",
			"end_at",
			"status",
			"created_via",
			"notes",
			"manage_token",
			"service_name",
			"service_price",
			"customer_name",
			"customer_phone",
		).
		Values(
			booking.ServiceID,
			booking.CustomerID,
			booking.CivilDate,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
			booking.CreatedVia,
			booking.Notes,
			booking.ManageToken,
			booking.ServiceName,
			booking.ServicePrice,
			booking.CustomerName,
			booking.CustomerPhone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isConstraintViolation(err) {
			return nil, fmt.Errorf("%w: Create - interval [%s, %s): %v",
				ErrSlotConflict, booking.StartAt.Format(time.RFC3339), booking.EndAt.Format(time.RFC3339), err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByIDAndToken получает бронирование по ID и токену управления.
// Используется публичной страницей подтверждения: токен заменяет аутентификацию.
func (r *Repository) GetByIDAndToken(ctx context.Context, id int64, manageToken string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id, "manage_token": manageToken}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndToken - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByIDAndToken")
}

// GetConfirmedByDate получает подтвержденные бронирования на гражданскую дату,
// отсортированные по времени начала.
// Внутри транзакции строки блокируются (FOR UPDATE) - выборка используется
// предварительной проверкой пересечений на пути записи.
func (r *Repository) GetConfirmedByDate(ctx context.Context, civilDate time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"civil_date": civilDate,
			"status":     domain.StatusConfirmed,
		}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetWithFilter получает бронирования с фильтрацией по периоду и статусу.
// Используется админкой для списков и календаря.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"civil_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"civil_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	// Для выборки на одну дату сортируем по времени начала, для периода -
	// сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("civil_date DESC, start_at DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel помечает бронирование отмененным (tombstone, физическое удаление
// не выполняется)
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateInterval переносит бронирование на новый интервал (reschedule).
// Перенос проходит ту же проверку констрейнта непересечения, что и вставка:
// при конфликте с другим подтвержденным бронированием возвращается ErrSlotConflict.
func (r *Repository) UpdateInterval(ctx context.Context, id int64, civilDate, startAt, endAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("civil_date", civilDate).
		Set("start_at", startAt).
		Set("end_at", endAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: UpdateInterval - interval [%s, %s): %v",
				ErrSlotConflict, startAt.Format(time.RFC3339), endAt.Format(time.RFC3339), err)
		}
		return fmt.Errorf("%w: UpdateInterval - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку бронирования
func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.CustomerID,
		&booking.CivilDate,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.CreatedVia,
		&booking.Notes,
		&booking.ManageToken,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ServiceID,
			&booking.CustomerID,
			&booking.CivilDate,
			&booking.StartAt,
			&booking.EndAt,
			&booking.Status,
			&booking.CreatedVia,
			&booking.Notes,
			&booking.ManageToken,
			&booking.ServiceName,
			&booking.ServicePrice,
			&booking.CustomerName,
			&booking.CustomerPhone,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pgUniqueViolation || code == pgExclusionViolation
	}
	return false
}
