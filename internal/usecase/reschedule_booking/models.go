package reschedule_booking

import (
	"time"

	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64           // ID бронирования
	Date      time.Time       // Новая гражданская дата
	StartTime civiltime.Clock // Новое гражданское время начала
}

// Response модель ответа на перенос бронирования
type Response struct {
	ID        int64
	ServiceID int64
	Date      time.Time
	StartTime civiltime.Clock
	StartAt   time.Time
	EndAt     time.Time
	Status    string
}
