package schedule

import (
	"context"
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListRules(ctx context.Context) ([]*domain.WeeklyHoursRule, error)
	UpsertRule(ctx context.Context, rule *domain.WeeklyHoursRule) (*domain.WeeklyHoursRule, error)
	ListOverridesFrom(ctx context.Context, from time.Time) ([]*domain.DateOverride, error)
	UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error)
	DeleteOverride(ctx context.Context, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
