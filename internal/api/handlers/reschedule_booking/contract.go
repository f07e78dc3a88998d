package reschedule_booking

import (
	"context"

	rescheduleUseCase "github.com/sgurenkov/VLM-BookingService/internal/usecase/reschedule_booking"
)

type RescheduleBookingUseCase interface {
	Execute(ctx context.Context, req *rescheduleUseCase.Request) (*rescheduleUseCase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
