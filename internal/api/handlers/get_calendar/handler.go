package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sgurenkov/VLM-BookingService/internal/api/handlers"
	getAvailability "github.com/sgurenkov/VLM-BookingService/internal/usecase/get_availability"
	getCalendar "github.com/sgurenkov/VLM-BookingService/internal/usecase/get_calendar"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

const (
	msgInvalidServiceID = "некорректный параметр serviceId"
	msgInvalidRange     = "некорректный диапазон дат, ожидается from=YYYY-MM-DD&to=YYYY-MM-DD"
	msgRangeTooLarge    = "слишком большой диапазон дат"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase   GetCalendarUseCase
	converter *civiltime.Converter
	logger    Logger
}

func NewHandler(useCase GetCalendarUseCase, converter *civiltime.Converter, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		converter: converter,
		logger:    logger,
	}
}

// Handle GET /api/v1/availability/calendar?serviceId=1&from=2025-10-01&to=2025-10-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/calendar - Invalid serviceId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	from, err := h.converter.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /availability/calendar - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	to, err := h.converter.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /availability/calendar - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCalendar.Request{
		ServiceID: serviceID,
		From:      from,
		To:        to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrRangeTooLarge):
			h.logger.Warn("GET /availability/calendar - Range too large: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getCalendar.ErrInvalidRange), errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /availability/calendar - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability/calendar - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /availability/calendar - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
