package list_services

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	PriceCents      *int64  `json:"price_cents"`
	PriceDisplay    string  `json:"price_display"`
}

// FromDomainServices конвертирует список услуг
func FromDomainServices(services []*domain.Service) []ServiceResponse {
	result := make([]ServiceResponse, len(services))
	for i, s := range services {
		result[i] = ServiceResponse{
			ID:              s.ID.String(),
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.DurationMinutes,
			PriceCents:      s.PriceCents,
			PriceDisplay:    s.PriceDisplay(),
		}
	}
	return result
}
