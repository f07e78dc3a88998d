package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
	"github.com/sgurenkov/VLM-BookingService/pkg/ptr"
)

func TestEffectiveHours(t *testing.T) {
	rule := &WeeklyHoursRule{
		Weekday:   0,
		OpenTime:  "08:00",
		CloseTime: "20:00",
		IsActive:  true,
	}

	tests := []struct {
		name     string
		override *DateOverride
		rule     *WeeklyHoursRule
		wantOpen bool
		want     HoursWindow
	}{
		{
			name:     "weekly rule only",
			rule:     rule,
			wantOpen: true,
			want:     HoursWindow{Open: "08:00", Close: "20:00"},
		},
		{
			name:     "closed override shadows open weekly rule",
			override: &DateOverride{Kind: OverrideClosed},
			rule:     rule,
			wantOpen: false,
		},
		{
			name: "custom hours override replaces weekly rule entirely",
			override: &DateOverride{
				Kind:      OverrideCustomHours,
				OpenTime:  ptr.Ptr(civiltime.Clock("10:00")),
				CloseTime: ptr.Ptr(civiltime.Clock("14:00")),
			},
			rule:     rule,
			wantOpen: true,
			want:     HoursWindow{Open: "10:00", Close: "14:00"},
		},
		{
			name:     "custom hours override without window treated as closed",
			override: &DateOverride{Kind: OverrideCustomHours},
			rule:     rule,
			wantOpen: false,
		},
		{
			name:     "inactive weekly rule means closed",
			rule:     &WeeklyHoursRule{Weekday: 0, OpenTime: "08:00", CloseTime: "20:00", IsActive: false},
			wantOpen: false,
		},
		{
			name:     "no override and no rule",
			wantOpen: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, open := EffectiveHours(tt.override, tt.rule)
			assert.Equal(t, tt.wantOpen, open)
			if tt.wantOpen {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC)
	// Существующее бронирование 10:00-10:40
	b := &Booking{StartAt: base, EndAt: base.Add(40 * time.Minute)}

	// 10:20-11:00 пересекается
	assert.True(t, b.Overlaps(base.Add(20*time.Minute), base.Add(60*time.Minute)))
	// 10:40-11:20 граничит, но не пересекается
	assert.False(t, b.Overlaps(base.Add(40*time.Minute), base.Add(80*time.Minute)))
	// 09:20-10:00 граничит снизу
	assert.False(t, b.Overlaps(base.Add(-40*time.Minute), base))
	// Полное поглощение
	assert.True(t, b.Overlaps(base.Add(-time.Hour), base.Add(2*time.Hour)))
}
