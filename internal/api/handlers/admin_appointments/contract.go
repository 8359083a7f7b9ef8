package admin_appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	List(ctx context.Context, req *models.ListRequest) ([]*models.Details, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Details, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.Details, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, req *models.UpdateNotesRequest) (*models.Details, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.Details, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
