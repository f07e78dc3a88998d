package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	"github.com/sgurenkov/VLM-BookingService/pkg/dbmetrics"
	"github.com/sgurenkov/VLM-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий клиентов. Ключ дедупликации - канонический
// телефон E.164 (уникальный индекс по phone).
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByPhone получает клиента по каноническому телефону
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "phone", "created_at", "updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"phone": phone}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Phone, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - scan customer: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// Upsert создает клиента или возвращает существующего по каноническому
// телефону, обновляя имя на последнее указанное.
// Идемпотентен: повторная бронь с тем же телефоном переиспользует строку.
func (r *Repository) Upsert(ctx context.Context, name, phone string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "phone").
		Values(name, phone).
		Suffix(`ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = NOW()
			RETURNING id, name, phone, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Phone, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
