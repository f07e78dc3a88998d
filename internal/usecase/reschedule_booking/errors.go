package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingCancelled возвращается при попытке перенести отмененную бронь
	ErrBookingCancelled = errors.New("booking is cancelled")

	// ErrDateNotBookable возвращается для прошедших дат
	ErrDateNotBookable = errors.New("date is not bookable")

	// ErrClosed возвращается, когда на дату нет рабочих часов
	ErrClosed = errors.New("closed on this date")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("slot is outside working hours")

	// ErrOffGrid возвращается, когда время начала не лежит на сетке слотов
	ErrOffGrid = errors.New("start time is not aligned to the slot grid")

	// ErrSlotConflict возвращается, когда новый слот уже занят
	ErrSlotConflict = errors.New("slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
