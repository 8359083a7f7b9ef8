package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID    = "service_id is required"
	msgInvalidServiceID    = "service_id must be a UUID"
	msgMissingDate         = "date is required"
	msgInvalidDate         = "date must be in YYYY-MM-DD format"
	msgServiceNotFound     = "service not found"
	msgServiceNotBookable  = "service cannot be booked online"
	msgUpstreamUnavailable = "availability is temporarily unavailable, please try again"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: service_id (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceIDStr := query.Get("service_id")
	if serviceIDStr == "" {
		h.logger.Warn("GET /available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceIDStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service_id=%s", serviceIDStr)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotBookable):
			h.logger.Warn("GET /available-slots - Service not bookable: service_id=%s", serviceIDStr)
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		case errors.Is(err, getAvailableSlots.ErrUpstreamUnavailable):
			h.logger.Error("GET /available-slots - Upstream unavailable: service_id=%s, error=%v", serviceIDStr, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: service_id=%s, date=%s, error=%v",
				serviceIDStr, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /available-slots - Slots retrieved successfully: service_id=%s, date=%s, slots_count=%d",
		serviceIDStr, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
