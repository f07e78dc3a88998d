package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sgurenkov/VLM-BookingService/internal/api/handlers"
	rescheduleUseCase "github.com/sgurenkov/VLM-BookingService/internal/usecase/reschedule_booking"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidBookingID    = "некорректный идентификатор бронирования"
	msgBookingNotFound     = "бронирование не найдено"
	msgBookingCancelled    = "бронирование отменено и не может быть перенесено"
	msgDateNotBookable     = "дата недоступна для переноса"
	msgClosed              = "в выбранный день запись не ведется"
	msgOutsideWorkingHours = "время выходит за пределы рабочих часов"
	msgOffGrid             = "время начала должно лежать на сетке слотов"
	msgSlotConflict        = "выбранное время уже занято"
)

type Handler struct {
	useCase   RescheduleBookingUseCase
	converter *civiltime.Converter
	logger    Logger
}

func NewHandler(useCase RescheduleBookingUseCase, converter *civiltime.Converter, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		converter: converter,
		logger:    logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, h.converter)
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleUseCase.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleUseCase.ErrBookingCancelled):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Cancelled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgBookingCancelled)

		case errors.Is(err, rescheduleUseCase.ErrSlotConflict):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Slot conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleUseCase.ErrDateNotBookable):
			handlers.RespondBadRequest(w, msgDateNotBookable)

		case errors.Is(err, rescheduleUseCase.ErrClosed):
			handlers.RespondBadRequest(w, msgClosed)

		case errors.Is(err, rescheduleUseCase.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleUseCase.ErrOffGrid):
			handlers.RespondBadRequest(w, msgOffGrid)

		case errors.Is(err, rescheduleUseCase.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/reschedule - Rescheduled: booking_id=%d, start_at=%s",
		bookingID, result.StartAt)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.converter))
}
