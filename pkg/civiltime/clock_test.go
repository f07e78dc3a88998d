package civiltime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "08:00"},
		{name: "valid evening", input: "19:45"},
		{name: "midnight", input: "00:00"},
		{name: "no leading zero", input: "8:00", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, c.String())
		})
	}
}

func TestClock_AddMinutes(t *testing.T) {
	c, err := ParseClock("19:20")
	require.NoError(t, err)

	end, err := c.AddMinutes(40)
	require.NoError(t, err)
	assert.Equal(t, "20:00", end.String())

	// Выход за пределы суток
	_, err = Clock("23:30").AddMinutes(40)
	assert.ErrorIs(t, err, ErrClockOverflow)
}

func TestClock_Comparisons(t *testing.T) {
	assert.True(t, Clock("08:00").IsBefore("09:30"))
	assert.False(t, Clock("09:30").IsBefore("09:30"))
	assert.True(t, Clock("10:15").IsAfter("10:00"))
	// Лексикографическое сравнение корректно и через границу 09->10
	assert.True(t, Clock("09:59").IsBefore("10:00"))
}

func TestClockFromMinutes(t *testing.T) {
	c, err := ClockFromMinutes(8*60 + 5)
	require.NoError(t, err)
	assert.Equal(t, "08:05", c.String())

	_, err = ClockFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrClockOverflow)

	_, err = ClockFromMinutes(-1)
	assert.ErrorIs(t, err, ErrClockOverflow)
}
