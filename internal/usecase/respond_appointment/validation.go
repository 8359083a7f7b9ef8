package respond_appointment

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID == uuid.Nil {
		return fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	if req.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if req.Action != ActionAccept && req.Action != ActionReject {
		return fmt.Errorf("%w: %q", ErrInvalidAction, req.Action)
	}

	return nil
}
