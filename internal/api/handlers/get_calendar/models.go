package get_calendar

import (
	getCalendar "github.com/sgurenkov/VLM-BookingService/internal/usecase/get_calendar"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// DayResponse HTTP модель сводки одного дня
type DayResponse struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	SlotCount int    `json:"slotCount"`
}

// CalendarResponse HTTP модель календаря доступности
type CalendarResponse struct {
	ServiceID int64          `json:"serviceId"`
	Days      []*DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]*DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, &DayResponse{
			Date:      d.Date.Format(civiltime.DateLayout),
			Available: d.Available,
			SlotCount: d.SlotCount,
		})
	}
	return &CalendarResponse{ServiceID: resp.ServiceID, Days: days}
}
