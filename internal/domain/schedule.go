package domain

import (
	"time"

	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// WeeklyHoursRule represents the default open/close window for one weekday.
// Weekday uses the Monday = 0 convention. At most one active rule exists
// per weekday (enforced by a partial unique index).
type WeeklyHoursRule struct {
	ID        int64
	Weekday   int
	OpenTime  civiltime.Clock
	CloseTime civiltime.Clock
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OverrideKind вид переопределения расписания на конкретную дату
type OverrideKind string

const (
	OverrideClosed      OverrideKind = "closed"
	OverrideCustomHours OverrideKind = "custom_hours"
)

// DateOverride fully shadows the weekly rule for its date: closed yields
// no hours, custom_hours supplies its own window. Override and weekly rule
// are never merged.
type DateOverride struct {
	ID        int64
	Date      time.Time
	Kind      OverrideKind
	OpenTime  *civiltime.Clock
	CloseTime *civiltime.Clock

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoursWindow effective open/close window for a date, in civil time
type HoursWindow struct {
	Open  civiltime.Clock
	Close civiltime.Clock
}

// EffectiveHours resolves the open/close window for a date:
//  1. an override, if present, is authoritative regardless of the weekly rule;
//  2. otherwise the active weekly rule applies;
//  3. neither means the date is closed.
//
// The second return value is false when the date has no effective hours.
func EffectiveHours(override *DateOverride, rule *WeeklyHoursRule) (HoursWindow, bool) {
	if override != nil {
		if override.Kind == OverrideClosed || override.OpenTime == nil || override.CloseTime == nil {
			return HoursWindow{}, false
		}
		return HoursWindow{Open: *override.OpenTime, Close: *override.CloseTime}, true
	}

	if rule != nil && rule.IsActive {
		return HoursWindow{Open: rule.OpenTime, Close: rule.CloseTime}, true
	}

	return HoursWindow{}, false
}
