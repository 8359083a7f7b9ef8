package admin_blocked_times

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	blockedTimes "github.com/m04kA/SMC-AppointmentService/internal/service/blocked_times"
	"github.com/m04kA/SMC-AppointmentService/internal/service/blocked_times/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidID          = "blocked time id must be a UUID"
	msgNotFound           = "blocked time not found"
)

type Handler struct {
	service BlockedTimesService
	logger  Logger
}

func NewHandler(service BlockedTimesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/blocked-times
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListUpcoming(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/blocked-times - Failed to list: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, items)
}

// Create POST /api/v1/admin/blocked-times
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-times - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, blockedTimes.ErrInvalidInput) {
			h.logger.Warn("POST /admin/blocked-times - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/blocked-times - Failed to create: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/blocked-times - Created: id=%s", created.ID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// Delete DELETE /api/v1/admin/blocked-times/{blockedTimeId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["blockedTimeId"])
	if err != nil {
		h.logger.Warn("DELETE /admin/blocked-times/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, blockedTimes.ErrBlockedTimeNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/blocked-times/{id} - Failed to delete: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/blocked-times/{id} - Deleted: id=%s", id)
	handlers.RespondNoContent(w)
}
