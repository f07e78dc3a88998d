package civiltime

import (
	"fmt"
	"time"
)

// DateLayout формат гражданской даты YYYY-MM-DD
const DateLayout = "2006-01-02"

// Converter конвертирует гражданское время (дата + Clock) в абсолютные
// моменты и обратно. Все операции идут через одну фиксированную именованную
// зону бизнеса, независимо от зоны вызывающей стороны.
//
// Конвертация выполняется по правилам зоны, включая переходы на летнее время.
type Converter struct {
	loc *time.Location
}

// NewConverter создает конвертер для именованной зоны (например "Europe/Moscow")
func NewConverter(zone string) (*Converter, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("civiltime: load zone %q: %w", zone, err)
	}
	return &Converter{loc: loc}, nil
}

// Location возвращает зону конвертера
func (c *Converter) Location() *time.Location {
	return c.loc
}

// Combine интерпретирует календарную дату и время суток как настенное время
// в зоне бизнеса и возвращает соответствующий абсолютный момент
func (c *Converter) Combine(date time.Time, clock Clock) (time.Time, error) {
	m, err := clock.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, c.loc), nil
}

// DateOf возвращает гражданскую дату момента (полночь в зоне бизнеса)
func (c *Converter) DateOf(instant time.Time) time.Time {
	lt := instant.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
}

// ClockOf возвращает гражданское время суток момента в зоне бизнеса
func (c *Converter) ClockOf(instant time.Time) Clock {
	return NewClock(instant.In(c.loc))
}

// ParseDate парсит "YYYY-MM-DD" в полночь гражданской даты в зоне бизнеса
func (c *Converter) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("civiltime: parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate форматирует дату как "YYYY-MM-DD"
func (c *Converter) FormatDate(date time.Time) string {
	return date.In(c.loc).Format(DateLayout)
}

// WeekdayIndex возвращает индекс дня недели гражданской даты.
// Принятая во всем сервисе конвенция: понедельник = 0, воскресенье = 6.
func (c *Converter) WeekdayIndex(date time.Time) int {
	return (int(date.In(c.loc).Weekday()) + 6) % 7
}

// SameCivilDay проверяет, что два момента приходятся на одну гражданскую дату
func (c *Converter) SameCivilDay(a, b time.Time) bool {
	la, lb := a.In(c.loc), b.In(c.loc)
	y1, m1, d1 := la.Date()
	y2, m2, d2 := lb.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что гражданская дата раньше сегодняшней
func (c *Converter) IsDateInPast(date, now time.Time) bool {
	return c.DateOf(date).Before(c.DateOf(now))
}
