package admin_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/admin/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings - Failed to load settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PATCH /api/v1/admin/settings
// Тело: {"buffer_time_minutes": 20, "require_approval": false, ...}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var values map[string]interface{}
	if err := handlers.DecodeJSON(r, &values); err != nil {
		h.logger.Warn("PATCH /admin/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdateSettingsRequest{Values: values})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrUnknownSetting), errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/settings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PATCH /admin/settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/settings - Settings updated: keys=%d", len(values))
	handlers.RespondJSON(w, http.StatusOK, result)
}
