package create_booking

import (
	"time"

	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID    int64           // ID услуги
	Date         time.Time       // Гражданская дата (полночь в зоне бизнеса)
	StartTime    civiltime.Clock // Гражданское время начала ("10:15")
	CustomerName string          // Имя клиента
	Phone        string          // Телефон в произвольном формате
	Notes        *string         // Пожелания клиента (опционально)
	Website      string          // Honeypot-поле, у людей всегда пустое
	CreatedVia   string          // Канал создания: website или admin
}

// Response модель ответа на создание бронирования
type Response struct {
	ID              int64
	ServiceID       int64
	ServiceName     string
	ServicePrice    float64
	Date            time.Time
	StartTime       civiltime.Clock
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Status          string
	CustomerName    string
	CustomerPhone   string
	Notes           *string
	ManageToken     string
	CreatedAt       time.Time
}
