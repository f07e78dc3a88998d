package reschedule_booking

import (
	"fmt"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSlotInWindow проверяет, что слот лежит на сетке и помещается
// в окно рабочих часов
func validateSlotInWindow(window domain.HoursWindow, start civiltime.Clock, durationMinutes int) error {
	if start.IsBefore(window.Open) {
		return ErrOutsideWorkingHours
	}

	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	openMin, err := window.Open.Minutes()
	if err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInternal, err)
	}
	if (startMin-openMin)%domain.SlotStepMinutes != 0 {
		return ErrOffGrid
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return ErrOutsideWorkingHours
	}
	if end.IsAfter(window.Close) {
		return ErrOutsideWorkingHours
	}

	return nil
}
