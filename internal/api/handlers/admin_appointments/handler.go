package admin_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidAppointmentID = "appointment id must be a UUID"
	msgAppointmentNotFound  = "appointment not found"
	msgInvalidTransition    = "status change is not allowed"
	msgInvalidFilter        = "invalid filter"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/appointments
// Query params: from, to (YYYY-MM-DD), status, include_cancelled
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	includeCancelled, _ := strconv.ParseBool(query.Get("include_cancelled"))

	items, err := h.service.List(r.Context(), &models.ListRequest{
		From:             query.Get("from"),
		To:               query.Get("to"),
		Status:           query.Get("status"),
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /admin/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /admin/appointments - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]*models.AppointmentResponse, len(items))
	for i, d := range items {
		response[i] = d.ToAppointmentResponse()
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}

// Get GET /api/v1/admin/appointments/{appointmentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	details, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /admin/appointments/{id}", id, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, details.ToAppointmentResponse())
}

// UpdateStatus PATCH /api/v1/admin/appointments/{appointmentId}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	details, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PATCH /admin/appointments/{id}/status", id, err)
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/status - appointment_id=%s, status=%s", id, req.Status)
	handlers.RespondJSON(w, http.StatusOK, details.ToAppointmentResponse())
}

// UpdateNotes PATCH /api/v1/admin/appointments/{appointmentId}/notes
func (h *Handler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req models.UpdateNotesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/notes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	details, err := h.service.UpdateNotes(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PATCH /admin/appointments/{id}/notes", id, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, details.ToAppointmentResponse())
}

// Cancel POST /api/v1/admin/appointments/{appointmentId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	details, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "POST /admin/appointments/{id}/cancel", id, err)
		return
	}

	h.logger.Info("POST /admin/appointments/{id}/cancel - Appointment cancelled: appointment_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, details.ToAppointmentResponse())
}

func (h *Handler) appointmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("%s %s - Invalid appointment ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, id uuid.UUID, err error) {
	switch {
	case errors.Is(err, appointments.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found: appointment_id=%s", route, id)
		handlers.RespondNotFound(w, msgAppointmentNotFound)

	case errors.Is(err, appointments.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: appointment_id=%s, error=%v", route, id, err)
		handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

	case errors.Is(err, appointments.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: appointment_id=%s, error=%v", route, id, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: appointment_id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
