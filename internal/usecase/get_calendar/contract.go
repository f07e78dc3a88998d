package get_calendar

import (
	"context"

	"github.com/sgurenkov/VLM-BookingService/internal/usecase/get_availability"
)

// AvailabilityProvider интерфейс для расчета доступности одного дня
type AvailabilityProvider interface {
	Execute(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
