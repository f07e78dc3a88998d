package get_availability

import (
	"time"

	getAvailability "github.com/sgurenkov/VLM-BookingService/internal/usecase/get_availability"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:15" в зоне бизнеса
	StartAt   string `json:"startAt"`   // RFC3339
	EndAt     string `json:"endAt"`     // RFC3339
}

// AvailabilityResponse HTTP модель ответа доступности
type AvailabilityResponse struct {
	Date            string          `json:"date"`
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []*SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]*SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, &SlotResponse{
			StartTime: string(s.StartTime),
			StartAt:   s.StartAt.Format(time.RFC3339),
			EndAt:     s.EndAt.Format(time.RFC3339),
		})
	}

	return &AvailabilityResponse{
		Date:            resp.Date.Format(civiltime.DateLayout),
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
