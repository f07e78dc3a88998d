package get_availability

import (
	"context"
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetConfirmedByDate получает подтвержденные бронирования на гражданскую дату
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	// GetActiveRuleByWeekday получает активное недельное правило (понедельник = 0)
	GetActiveRuleByWeekday(ctx context.Context, weekday int) (*domain.WeeklyHoursRule, error)
	// GetOverrideByDate получает переопределение на конкретную дату
	GetOverrideByDate(ctx context.Context, date time.Time) (*domain.DateOverride, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
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
