package list_bookings

import (
	"errors"
	"net/http"

	"github.com/sgurenkov/VLM-BookingService/internal/api/handlers"
	bookingsService "github.com/sgurenkov/VLM-BookingService/internal/service/bookings"
	"github.com/sgurenkov/VLM-BookingService/internal/service/bookings/models"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректные параметры фильтра"
)

type Handler struct {
	service   BookingsService
	converter *civiltime.Converter
	logger    Logger
}

func NewHandler(service BookingsService, converter *civiltime.Converter, logger Logger) *Handler {
	return &Handler{
		service:   service,
		converter: converter,
		logger:    logger,
	}
}

// Handle GET /api/v1/admin/bookings?from=...&to=...&status=...&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}
	query := r.URL.Query()

	if raw := query.Get("from"); raw != "" {
		date, err := h.converter.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &date
	}

	if raw := query.Get("to"); raw != "" {
		date, err := h.converter.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &date
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/bookings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
