package get_booking

import (
	"context"

	"github.com/sgurenkov/VLM-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetByIDWithToken(ctx context.Context, id int64, manageToken string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
