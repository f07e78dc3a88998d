package bookings

import (
	"context"
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDAndToken(ctx context.Context, id int64, manageToken string) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// AuditRepository интерфейс журнала аудита
type AuditRepository interface {
	Insert(ctx context.Context, bookingID int64, action, details string) error
}

// EventPublisher публикует доменные события (best-effort)
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
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
