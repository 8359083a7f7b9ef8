package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// RuleRequest правило одного дня недели (0 = воскресенье)
type RuleRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	IsActive  bool   `json:"is_active"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// ReplaceRequest массовая замена правил
type ReplaceRequest struct {
	Rules []RuleRequest `json:"rules"`
}

// RuleResponse правило в ответе
type RuleResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	IsActive  bool   `json:"is_active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// FromDomainRule конвертирует доменное правило в ответ
func FromDomainRule(r *domain.WeeklyAvailabilityRule) RuleResponse {
	return RuleResponse{
		DayOfWeek: r.DayOfWeek,
		IsActive:  r.IsActive,
		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),
	}
}
