package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса и возвращает дату
func validateRequest(req *Request, zone *scheduling.Zone) (time.Time, error) {
	if req.ServiceID == uuid.Nil {
		return time.Time{}, fmt.Errorf("%w: service_id is required", ErrInvalidInput)
	}

	if req.Date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := zone.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, req.Date)
	}

	return date, nil
}
