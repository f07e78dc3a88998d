package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
	"github.com/sgurenkov/VLM-BookingService/pkg/dbmetrics"
	"github.com/sgurenkov/VLM-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания и переопределений дат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveRuleByWeekday возвращает активное правило недельного расписания
// для дня недели (понедельник = 0). Активное правило для дня максимум одно
// (частичный уникальный индекс).
func (r *Repository) GetActiveRuleByWeekday(ctx context.Context, weekday int) (*domain.WeeklyHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "weekday", "open_time", "close_time", "is_active", "created_at", "updated_at",
	).
		From("weekly_hours_rules").
		Where(squirrel.Eq{"weekday": weekday, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRuleByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var rule domain.WeeklyHoursRule
	var open, close string
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID, &rule.Weekday, &open, &close, &rule.IsActive, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRuleByWeekday - scan rule: %v", ErrScanRow, err)
	}

	rule.OpenTime = civiltime.Clock(open)
	rule.CloseTime = civiltime.Clock(close)
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// ListRules возвращает все правила недельного расписания
func (r *Repository) ListRules(ctx context.Context) ([]*domain.WeeklyHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "weekday", "open_time", "close_time", "is_active", "created_at", "updated_at",
	).
		From("weekly_hours_rules").
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.WeeklyHoursRule, 0)
	for rows.Next() {
		var rule domain.WeeklyHoursRule
		var open, close string
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&rule.ID, &rule.Weekday, &open, &close, &rule.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListRules - scan row: %v", ErrScanRow, err)
		}

		rule.OpenTime = civiltime.Clock(open)
		rule.CloseTime = civiltime.Clock(close)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// UpsertRule создает или заменяет активное правило для дня недели.
// Деактивация выполняется установкой is_active = false.
func (r *Repository) UpsertRule(ctx context.Context, rule *domain.WeeklyHoursRule) (*domain.WeeklyHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_hours_rules").
		Columns("weekday", "open_time", "close_time", "is_active").
		Values(rule.Weekday, rule.OpenTime.String(), rule.CloseTime.String(), rule.IsActive).
		Suffix(`ON CONFLICT (weekday) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRule - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertRule - execute upsert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetOverrideByDate возвращает переопределение расписания для гражданской даты
func (r *Repository) GetOverrideByDate(ctx context.Context, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "date", "kind", "open_time", "close_time", "created_at", "updated_at",
	).
		From("date_overrides").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByDate - build select query: %v", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByDate - scan override: %v", ErrScanRow, err)
	}

	return override, nil
}

// ListOverridesFrom возвращает переопределения начиная с даты (для админки)
func (r *Repository) ListOverridesFrom(ctx context.Context, from time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "date", "kind", "open_time", "close_time", "created_at", "updated_at",
	).
		From("date_overrides").
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesFrom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		var o domain.DateOverride
		var open, close sql.NullString
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&o.ID, &o.Date, &o.Kind, &open, &close, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListOverridesFrom - scan row: %v", ErrScanRow, err)
		}

		if open.Valid {
			c := civiltime.Clock(open.String)
			o.OpenTime = &c
		}
		if close.Valid {
			c := civiltime.Clock(close.String)
			o.CloseTime = &c
		}
		o.CreatedAt = createdAt.Time
		o.UpdatedAt = updatedAt.Time
		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverridesFrom - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// UpsertOverride создает или заменяет переопределение для даты.
// Для даты существует максимум одна строка (уникальный индекс по date).
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var open, close interface{}
	if override.OpenTime != nil {
		open = override.OpenTime.String()
	}
	if override.CloseTime != nil {
		close = override.CloseTime.String()
	}

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("date", "kind", "open_time", "close_time").
		Values(override.Date, override.Kind, open, close).
		Suffix(`ON CONFLICT (date) DO UPDATE SET
			kind = EXCLUDED.kind,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&override.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute upsert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// DeleteOverride удаляет переопределение даты
func (r *Repository) DeleteOverride(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

func scanOverride(row *sql.Row) (*domain.DateOverride, error) {
	var o domain.DateOverride
	var open, close sql.NullString
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&o.ID, &o.Date, &o.Kind, &open, &close, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if open.Valid {
		c := civiltime.Clock(open.String)
		o.OpenTime = &c
	}
	if close.Valid {
		c := civiltime.Clock(close.String)
		o.CloseTime = &c
	}
	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}
