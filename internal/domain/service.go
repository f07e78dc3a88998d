package domain

import "time"

// Service represents a bookable service from the catalog.
// DurationMinutes drives slot length; inactive services are invisible
// to the availability engine.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
