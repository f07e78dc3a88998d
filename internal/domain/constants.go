package domain

// Slot generation
const (
	// SlotStepMinutes фиксированный шаг сетки слотов
	SlotStepMinutes = 15
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов

	MaxNameLength  = 120
	MaxNotesLength = 500

	MaxLeadTimeMinutes = 10080 // неделя

	// MaxCalendarRangeDays предел диапазона календаря доступности
	MaxCalendarRangeDays = 62
)

// Weekday bounds (Monday = 0)
const (
	MinWeekday = 0
	MaxWeekday = 6
)
