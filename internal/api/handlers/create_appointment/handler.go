package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidServiceID    = "service_id must be a UUID"
	msgValidationFailed    = "validation failed"
	msgServiceNotFound     = "service not found"
	msgServiceNotBookable  = "service cannot be booked online"
	msgTooLateToBook       = "this time is too soon to book, please pick a later slot"
	msgOutsideHours        = "requested time is outside business hours"
	msgSlotConflict        = "this time slot is no longer available, please choose another"
	msgPaymentFailed       = "payment failed, the appointment was not booked"
	msgUpstreamUnavailable = "booking is temporarily unavailable, please try again"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid service ID %q: %v", req.ServiceID, err)
		handlers.RespondValidationError(w, msgValidationFailed, map[string]string{"service_id": msgInvalidServiceID})
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createAppointment.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondValidationError(w, msgValidationFailed, validationErr.Fields)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotBookable):
			h.logger.Warn("POST /appointments - Service not bookable: service_id=%s", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrOutsideHours):
			h.logger.Warn("POST /appointments - Outside business hours: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: service_id=%s, date=%s, time=%s", req.ServiceID, req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrPaymentFailed):
			h.logger.Warn("POST /appointments - Payment failed: %v", err)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

		case errors.Is(err, createAppointment.ErrUpstreamUnavailable):
			h.logger.Error("POST /appointments - Upstream unavailable: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgUpstreamUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, status=%s",
		result.Appointment.ID, result.Appointment.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
