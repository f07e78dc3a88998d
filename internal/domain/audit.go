package domain

import "time"

// Audit actions
const (
	ActionBookingCreated     = "booking_created"
	ActionBookingCancelled   = "booking_cancelled"
	ActionBookingRescheduled = "booking_rescheduled"
)

// AuditLogEntry best-effort audit record. Absence of an entry does not
// invalidate the booking it describes.
type AuditLogEntry struct {
	ID        int64
	BookingID int64
	Action    string
	Details   string
	CreatedAt time.Time
}
