package audit

import (
	"context"
	"fmt"

	"github.com/sgurenkov/VLM-BookingService/pkg/dbmetrics"
	"github.com/sgurenkov/VLM-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий журнала аудита.
// Запись best-effort: вызывающая сторона логирует ошибку и продолжает,
// отсутствие записи аудита не делает бронирование недействительным.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert добавляет запись аудита для бронирования
func (r *Repository) Insert(ctx context.Context, bookingID int64, action, details string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("audit_log").
		Columns("booking_id", "action", "details").
		Values(bookingID, action, details).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
