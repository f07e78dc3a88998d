package reschedule_booking

import (
	"context"
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// GetConfirmedByDate внутри транзакции блокирует строки (FOR UPDATE)
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	UpdateInterval(ctx context.Context, id int64, civilDate, startAt, endAt time.Time) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetActiveRuleByWeekday(ctx context.Context, weekday int) (*domain.WeeklyHoursRule, error)
	GetOverrideByDate(ctx context.Context, date time.Time) (*domain.DateOverride, error)
}

// AuditRepository интерфейс журнала аудита
type AuditRepository interface {
	Insert(ctx context.Context, bookingID int64, action, details string) error
}

// EventPublisher публикует доменные события (best-effort)
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

// MetricsRecorder счетчики бизнес-метрик
type MetricsRecorder interface {
	IncBookingConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
