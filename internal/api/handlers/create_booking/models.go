package create_booking

import (
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	createBooking "github.com/sgurenkov/VLM-BookingService/internal/usecase/create_booking"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID    int64   `json:"serviceId"`
	Date         string  `json:"date"`      // "2025-10-15"
	StartTime    string  `json:"startTime"` // "10:00"
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	Notes        *string `json:"notes,omitempty"`
	// Website скрытое поле формы, у людей остается пустым
	Website string `json:"website,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	StartAt         string  `json:"startAt"`
	EndAt           string  `json:"endAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	Notes           *string `json:"notes,omitempty"`
	ManageToken     string  `json:"manageToken"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата интерпретируется в гражданской зоне бизнеса.
func (r *CreateBookingRequest) ToUseCaseRequest(conv *civiltime.Converter) (*createBooking.Request, error) {
	date, err := conv.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := civiltime.ParseClock(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:    r.ServiceID,
		Date:         date,
		StartTime:    startTime,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Notes:        r.Notes,
		Website:      r.Website,
		CreatedVia:   domain.CreatedViaWebsite,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Date:            resp.Date.Format(civiltime.DateLayout),
		StartTime:       string(resp.StartTime),
		StartAt:         resp.StartAt.Format(time.RFC3339),
		EndAt:           resp.EndAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		Notes:           resp.Notes,
		ManageToken:     resp.ManageToken,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
