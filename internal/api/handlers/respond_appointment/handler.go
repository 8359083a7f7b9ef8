package respond_appointment

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	respondAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/respond_appointment"
)

const (
	msgMissingParams = "Missing action or token"
	msgInvalidAction = "Invalid action"
	msgNotFound      = "Appointment not found or invalid token"
	msgInternal      = "Something went wrong while updating the appointment. Please try again."
)

// Config параметры HTML-страниц
type Config struct {
	BusinessName string
	DashboardURL string
}

type Handler struct {
	useCase RespondAppointmentUseCase
	cfg     Config
	logger  Logger
}

func NewHandler(useCase RespondAppointmentUseCase, cfg Config, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}/respond?action=accept|reject&token=...
// Ответ HTML: ссылка открывается из письма специалиста
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	action := query.Get("action")
	token := query.Get("token")

	if action == "" || token == "" {
		h.logger.Warn("GET /appointments/{id}/respond - Missing action or token")
		h.render(w, http.StatusBadRequest, errorPage(msgMissingParams))
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("GET /appointments/{id}/respond - Invalid appointment ID: %v", err)
		h.render(w, http.StatusNotFound, errorPage(msgNotFound))
		return
	}

	result, err := h.useCase.Execute(r.Context(), &respondAppointment.Request{
		AppointmentID: appointmentID,
		Token:         token,
		Action:        respondAppointment.Action(action),
	})
	if err != nil {
		switch {
		case errors.Is(err, respondAppointment.ErrInvalidAction), errors.Is(err, respondAppointment.ErrInvalidInput):
			h.logger.Warn("GET /appointments/{id}/respond - Invalid action %q", action)
			h.render(w, http.StatusBadRequest, errorPage(msgInvalidAction))

		case errors.Is(err, respondAppointment.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id}/respond - Not found or bad token: appointment_id=%s", appointmentID)
			h.render(w, http.StatusNotFound, errorPage(msgNotFound))

		default:
			h.logger.Error("GET /appointments/{id}/respond - Failed: appointment_id=%s, error=%v", appointmentID, err)
			h.render(w, http.StatusInternalServerError, errorPage(msgInternal))
		}
		return
	}

	if result.AlreadyProcessed {
		h.logger.Info("GET /appointments/{id}/respond - Already processed: appointment_id=%s, status=%s",
			appointmentID, result.Appointment.Status)
		h.render(w, http.StatusOK, page{
			Icon:      "⚠",
			IconClass: "warning",
			Title:     "Already Processed",
			Message:   fmt.Sprintf("This appointment has already been %s. No further action is needed.", result.Appointment.Status),
		})
		return
	}

	h.logger.Info("GET /appointments/{id}/respond - %s: appointment_id=%s", action, appointmentID)
	h.render(w, http.StatusOK, successPage(respondAppointment.Action(action), result))
}

func successPage(action respondAppointment.Action, result *respondAppointment.Response) page {
	name := result.Client.FullName()
	service := result.Service.Name

	if action == respondAppointment.ActionAccept {
		return page{
			Icon:      "✓",
			IconClass: "success",
			Title:     "Appointment Accepted",
			Message: fmt.Sprintf("You have accepted the appointment request from %s for %s. "+
				"A confirmation email has been sent to the client.", name, service),
		}
	}
	return page{
		Icon:      "✗",
		IconClass: "error",
		Title:     "Appointment Rejected",
		Message: fmt.Sprintf("You have declined the appointment request from %s for %s. "+
			"The client has been notified.", name, service),
	}
}
