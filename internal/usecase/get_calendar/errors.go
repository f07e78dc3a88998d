package get_calendar

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("invalid date range")

	// ErrRangeTooLarge возвращается, когда диапазон превышает допустимый предел
	ErrRangeTooLarge = errors.New("date range is too large")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")
)
