package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking source channels
const (
	CreatedViaWebsite = "website"
	CreatedViaAdmin   = "admin"
)

// Booking represents a confirmed reservation of the practitioner's time.
// StartAt/EndAt are absolute instants; CivilDate is the civil date of the
// slot in the business timezone, denormalized for per-day queries.
// A cancelled booking is a tombstone kept for history, never deleted.
type Booking struct {
	ID         int64
	ServiceID  int64
	CustomerID int64

	CivilDate time.Time
	StartAt   time.Time
	EndAt     time.Time

	Status      BookingStatus
	CreatedVia  string
	Notes       *string
	ManageToken string

	// Denormalized data for history
	ServiceName   string
	ServicePrice  float64
	CustomerName  string
	CustomerPhone string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking participates in conflict checks
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// Overlaps reports whether the half-open interval [start, end) intersects
// the booking's [StartAt, EndAt). Touching intervals do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода по гражданской дате (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
