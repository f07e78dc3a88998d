package create_booking

import (
	"errors"
	"net/http"

	"github.com/sgurenkov/VLM-BookingService/internal/api/handlers"
	createBooking "github.com/sgurenkov/VLM-BookingService/internal/usecase/create_booking"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidPhone       = "некорректный номер телефона"
	msgServiceNotFound    = "услуга не найдена"
	msgDateNotBookable    = "запись на эту дату недоступна"
	msgClosed             = "в выбранную дату запись не ведется"
	msgOutsideHours       = "выбранное время вне рабочих часов"
	msgOffGrid            = "время начала должно лежать на сетке слотов"
	msgSlotConflict       = "выбранное время уже занято"
)

type Handler struct {
	useCase   CreateBookingUseCase
	converter *civiltime.Converter
	logger    Logger
}

func NewHandler(useCase CreateBookingUseCase, converter *civiltime.Converter, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		converter: converter,
		logger:    logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.converter)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: service_id=%d, date=%s, time=%s",
				req.ServiceID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidPhone):
			h.logger.Warn("POST /bookings - Invalid phone")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createBooking.ErrBotDetected):
			// Боту отвечаем тем же текстом, что и на обычную ошибку валидации
			h.logger.Warn("POST /bookings - Honeypot field filled, dropping submission")
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrDateNotBookable):
			h.logger.Warn("POST /bookings - Date not bookable: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateNotBookable)

		case errors.Is(err, createBooking.ErrClosed):
			h.logger.Warn("POST /bookings - Closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgClosed)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrOffGrid):
			h.logger.Warn("POST /bookings - Off grid start: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgOffGrid)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			// Сюда попадает и ErrWriteVerification: для клиента это
			// внутренняя ошибка, детали уже в логе
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, error=%v",
				req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, service_id=%d",
		result.ID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
