package get_next_available

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getNextAvailable "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_next_available"
)

const (
	msgInvalidServiceID    = "service_id must be a UUID"
	msgServiceNotFound     = "service not found"
	msgServiceNotBookable  = "service cannot be booked online"
	msgUpstreamUnavailable = "availability is temporarily unavailable, please try again"
)

type Handler struct {
	useCase GetNextAvailableUseCase
	logger  Logger
}

func NewHandler(useCase GetNextAvailableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/next-available
// Query params: service_id (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDStr := r.URL.Query().Get("service_id")
	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		h.logger.Warn("GET /next-available - Invalid service ID %q: %v", serviceIDStr, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getNextAvailable.Request{ServiceID: serviceID})
	if err != nil {
		switch {
		case errors.Is(err, getNextAvailable.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		case errors.Is(err, getNextAvailable.ErrServiceNotFound):
			h.logger.Warn("GET /next-available - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getNextAvailable.ErrServiceNotBookable):
			h.logger.Warn("GET /next-available - Service not bookable: service_id=%s", serviceID)
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		case errors.Is(err, getNextAvailable.ErrUpstreamUnavailable):
			h.logger.Error("GET /next-available - Upstream unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /next-available - Failed to search: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /next-available - service_id=%s, date=%v", serviceID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, response)
}
