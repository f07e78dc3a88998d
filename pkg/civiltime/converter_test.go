package civiltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConverter(t *testing.T, zone string) *Converter {
	t.Helper()
	c, err := NewConverter(zone)
	require.NoError(t, err)
	return c
}

func TestConverter_Combine(t *testing.T) {
	conv := mustConverter(t, "Europe/Moscow")

	date, err := conv.ParseDate("2025-10-20")
	require.NoError(t, err)

	instant, err := conv.Combine(date, "08:00")
	require.NoError(t, err)

	// Москва UTC+3, без летнего времени
	assert.Equal(t, "2025-10-20T05:00:00Z", instant.UTC().Format(time.RFC3339))
	assert.Equal(t, Clock("08:00"), conv.ClockOf(instant))
	assert.Equal(t, "2025-10-20", conv.FormatDate(conv.DateOf(instant)))
}

func TestConverter_CombineDST(t *testing.T) {
	// Берлин переходит на летнее время 2025-03-30: 02:00 -> 03:00
	conv := mustConverter(t, "Europe/Berlin")

	before, err := conv.ParseDate("2025-03-29")
	require.NoError(t, err)
	after, err := conv.ParseDate("2025-03-30")
	require.NoError(t, err)

	i1, err := conv.Combine(before, "12:00")
	require.NoError(t, err)
	i2, err := conv.Combine(after, "12:00")
	require.NoError(t, err)

	// Из-за перехода между одинаковыми настенными временами 23 часа, а не 24
	assert.Equal(t, 23*time.Hour, i2.Sub(i1))
}

func TestConverter_WeekdayIndex(t *testing.T) {
	conv := mustConverter(t, "Europe/Moscow")

	monday, err := conv.ParseDate("2025-10-20")
	require.NoError(t, err)
	sunday, err := conv.ParseDate("2025-10-26")
	require.NoError(t, err)

	assert.Equal(t, 0, conv.WeekdayIndex(monday))
	assert.Equal(t, 6, conv.WeekdayIndex(sunday))
}

func TestConverter_SameCivilDay(t *testing.T) {
	conv := mustConverter(t, "Europe/Moscow")

	// 23:30 UTC 19-го = 02:30 MSK 20-го
	lateUTC := time.Date(2025, 10, 19, 23, 30, 0, 0, time.UTC)
	morningMSK := time.Date(2025, 10, 20, 9, 0, 0, 0, conv.Location())

	assert.True(t, conv.SameCivilDay(lateUTC, morningMSK))
}

func TestConverter_IsDateInPast(t *testing.T) {
	conv := mustConverter(t, "Europe/Moscow")
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, conv.Location())

	yesterday, _ := conv.ParseDate("2025-10-19")
	today, _ := conv.ParseDate("2025-10-20")
	tomorrow, _ := conv.ParseDate("2025-10-21")

	assert.True(t, conv.IsDateInPast(yesterday, now))
	assert.False(t, conv.IsDateInPast(today, now))
	assert.False(t, conv.IsDateInPast(tomorrow, now))
}

func TestNewConverter_UnknownZone(t *testing.T) {
	_, err := NewConverter("Mars/Olympus")
	assert.Error(t, err)
}
