package domain

import "time"

// Customer represents a returning client. Phone is stored in canonical
// E.164 format and serves as the dedup key: a customer is created on the
// first booking and reused for every subsequent one.
type Customer struct {
	ID    int64
	Name  string
	Phone string

	CreatedAt time.Time
	UpdatedAt time.Time
}
