package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sgurenkov/VLM-BookingService/internal/api/handlers"
	getAvailability "github.com/sgurenkov/VLM-BookingService/internal/usecase/get_availability"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

const (
	msgInvalidServiceID = "некорректный параметр serviceId"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase   GetAvailabilityUseCase
	converter *civiltime.Converter
	logger    Logger
}

func NewHandler(useCase GetAvailabilityUseCase, converter *civiltime.Converter, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		converter: converter,
		logger:    logger,
	}
}

// Handle GET /api/v1/availability?serviceId=1&date=2025-10-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid serviceId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := h.converter.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		default:
			h.logger.Error("GET /availability - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
