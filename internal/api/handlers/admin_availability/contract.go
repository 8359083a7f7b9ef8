package admin_availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
)

type AvailabilityService interface {
	List(ctx context.Context) ([]models.RuleResponse, error)
	Replace(ctx context.Context, req *models.ReplaceRequest) ([]models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
