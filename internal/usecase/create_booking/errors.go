package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или не активна
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidPhone возвращается, когда телефон не распознается
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrBotDetected возвращается, когда заполнено скрытое поле формы
	ErrBotDetected = errors.New("bot submission detected")

	// ErrDateNotBookable возвращается для прошедших дат и записи день в день
	ErrDateNotBookable = errors.New("date is not bookable")

	// ErrClosed возвращается, когда на дату нет рабочих часов
	ErrClosed = errors.New("closed on this date")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("slot is outside working hours")

	// ErrOffGrid возвращается, когда время начала не лежит на сетке слотов
	ErrOffGrid = errors.New("start time is not aligned to the slot grid")

	// ErrSlotConflict возвращается, когда слот уже занят другим бронированием
	ErrSlotConflict = errors.New("slot is already booked")

	// ErrWriteVerification возвращается, когда контрольное чтение после
	// коммита не находит созданное бронирование в ожидаемом виде
	ErrWriteVerification = errors.New("booking write verification failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
