package get_availability

import (
	"time"

	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Гражданская дата (полночь в зоне бизнеса)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	ServiceID       int64     // ID услуги
	ServiceName     string    // Название услуги
	DurationMinutes int       // Длительность услуги в минутах
	Slots           []Slot    // Список доступных слотов
}

// Slot модель доступного временного слота
type Slot struct {
	StartTime civiltime.Clock // Гражданское время начала (например, "10:15")
	StartAt   time.Time       // Абсолютный момент начала
	EndAt     time.Time       // Абсолютный момент окончания
}
