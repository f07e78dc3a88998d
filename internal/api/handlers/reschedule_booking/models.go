package reschedule_booking

import (
	"fmt"
	"time"

	rescheduleUseCase "github.com/sgurenkov/VLM-BookingService/internal/usecase/reschedule_booking"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "14:30"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель usecase
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64, conv *civiltime.Converter) (*rescheduleUseCase.Request, error) {
	date, err := conv.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %v", err)
	}

	startTime, err := civiltime.ParseClock(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %v", err)
	}

	return &rescheduleUseCase.Request{
		BookingID: bookingID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	Status    string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *rescheduleUseCase.Response, conv *civiltime.Converter) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		ID:        resp.ID,
		ServiceID: resp.ServiceID,
		Date:      conv.FormatDate(resp.Date),
		StartTime: string(resp.StartTime),
		StartAt:   resp.StartAt.Format(time.RFC3339),
		EndAt:     resp.EndAt.Format(time.RFC3339),
		Status:    resp.Status,
	}
}
