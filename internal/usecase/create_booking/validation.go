package create_booking

import (
	"fmt"
	"strings"

	"github.com/sgurenkov/VLM-BookingService/internal/domain"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	// Скрытое поле формы: люди его не видят и не заполняют
	if req.Website != "" {
		return ErrBotDetected
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.CreatedVia != domain.CreatedViaWebsite && req.CreatedVia != domain.CreatedViaAdmin {
		return fmt.Errorf("%w: unknown creation channel %q", ErrInvalidInput, req.CreatedVia)
	}

	return nil
}

// validateSlotInWindow проверяет, что запрошенный слот лежит на сетке
// и целиком помещается в окно рабочих часов
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
