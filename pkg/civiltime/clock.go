package civiltime

import (
	"errors"
	"fmt"
	"time"
)

// Формат гражданского времени "HH:MM" (24 часа).
const clockLayout = "15:04"

var (
	// ErrInvalidClock возвращается при некорректном формате времени
	ErrInvalidClock = errors.New("civiltime: invalid clock format, expected HH:MM")

	// ErrClockOverflow возвращается, когда арифметика выходит за границы суток
	ErrClockOverflow = errors.New("civiltime: clock arithmetic out of day bounds")
)

// Clock гражданское время суток в виде строки "HH:MM".
// Строковое представление с ведущими нулями сравнимо лексикографически,
// поэтому IsBefore/IsAfter работают без парсинга.
type Clock string

// NewClock создает Clock из time.Time (часы и минуты, без учета зоны)
func NewClock(t time.Time) Clock {
	return Clock(t.Format(clockLayout))
}

// ParseClock парсит строку "HH:MM" в Clock
func ParseClock(s string) (Clock, error) {
	if _, err := time.Parse(clockLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(s), nil
}

// ClockFromMinutes создает Clock из количества минут с полуночи
func ClockFromMinutes(m int) (Clock, error) {
	if m < 0 || m >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrClockOverflow, m)
	}
	return Clock(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет корректность формата
func (c Clock) Validate() error {
	_, err := ParseClock(string(c))
	return err
}

// Minutes возвращает количество минут с полуночи
func (c Clock) Minutes() (int, error) {
	t, err := time.Parse(clockLayout, string(c))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, string(c))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на m минут вперед.
// Выход за пределы суток считается ошибкой: рабочее окно не пересекает полночь.
func (c Clock) AddMinutes(m int) (Clock, error) {
	cur, err := c.Minutes()
	if err != nil {
		return "", err
	}
	return ClockFromMinutes(cur + m)
}

// IsBefore возвращает true, если c строго раньше other
func (c Clock) IsBefore(other Clock) bool {
	return string(c) < string(other)
}

// IsAfter возвращает true, если c строго позже other
func (c Clock) IsAfter(other Clock) bool {
	return string(c) > string(other)
}

func (c Clock) String() string {
	return string(c)
}
