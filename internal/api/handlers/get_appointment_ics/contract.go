package get_appointment_ics

import (
	"context"

	"github.com/google/uuid"
)

type CalendarService interface {
	Calendar(ctx context.Context, id uuid.UUID, token string) (content string, filename string, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
