package update_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sgurenkov/VLM-BookingService/internal/api/handlers"
	scheduleService "github.com/sgurenkov/VLM-BookingService/internal/service/schedule"
	"github.com/sgurenkov/VLM-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeekday     = "день недели должен быть от 0 (понедельник) до 6"
	msgInvalidWindow      = "некорректное окно рабочих часов"
	msgOverrideNotFound   = "переопределение для этой даты не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleUpsertWeekly PUT /api/v1/admin/schedule/weekly
func (h *Handler) HandleUpsertWeekly(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertWeeklyRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/weekly - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertWeeklyRule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidWeekday):
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, scheduleService.ErrInvalidWindow):
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /admin/schedule/weekly - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpsertOverride PUT /api/v1/admin/schedule/overrides
func (h *Handler) HandleUpsertOverride(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertOverride(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidWindow):
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /admin/schedule/overrides - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeleteOverride DELETE /api/v1/admin/schedule/overrides/{date}
func (h *Handler) HandleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	rawDate := mux.Vars(r)["date"]

	if err := h.service.DeleteOverride(r.Context(), rawDate); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrOverrideNotFound):
			h.logger.Warn("DELETE /admin/schedule/overrides/{date} - Not found: date=%s", rawDate)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("DELETE /admin/schedule/overrides/{date} - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/schedule/overrides/{date} - Removed: date=%s", rawDate)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
