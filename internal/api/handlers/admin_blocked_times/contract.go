package admin_blocked_times

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/blocked_times/models"
)

type BlockedTimesService interface {
	ListUpcoming(ctx context.Context) ([]*models.BlockedTimeResponse, error)
	Create(ctx context.Context, req *models.CreateRequest) (*models.BlockedTimeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
