package models

import (
	"errors"
	"time"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ListBookingsRequest запрос на список бронирований для админки
type ListBookingsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainBookingStatus конвертирует строку в статус бронирования
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64   `json:"id"`
	ServiceID          int64   `json:"serviceId"`
	ServiceName        string  `json:"serviceName"`
	ServicePrice       float64 `json:"servicePrice"`
	Date               string  `json:"date"`      // "2025-10-15"
	StartTime          string  `json:"startTime"` // "10:00"
	StartAt            string  `json:"startAt"`   // RFC3339
	EndAt              string  `json:"endAt"`     // RFC3339
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	CreatedVia         string  `json:"createdVia"`
	CustomerName       string  `json:"customerName"`
	CustomerPhone      string  `json:"customerPhone"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain модель в response.
// Гражданские дата и время считаются через конвертер зоны бизнеса.
func FromDomainBooking(b *domain.Booking, conv *civiltime.Converter) *BookingResponse {
	resp := &BookingResponse{
		ID:                 b.ID,
		ServiceID:          b.ServiceID,
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		Date:               conv.FormatDate(b.CivilDate),
		StartTime:          string(conv.ClockOf(b.StartAt)),
		StartAt:            b.StartAt.Format(time.RFC3339),
		EndAt:              b.EndAt.Format(time.RFC3339),
		DurationMinutes:    int(b.EndAt.Sub(b.StartAt) / time.Minute),
		Status:             string(b.Status),
		CreatedVia:         b.CreatedVia,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
	}

	if b.CancelledAt != nil {
		s := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(bookings []*domain.Booking, conv *civiltime.Converter) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b, conv))
	}
	return &BookingListResponse{Bookings: result, Total: len(result)}
}
