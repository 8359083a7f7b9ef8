package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BlockType вид блокировки
type BlockType string

const (
	BlockFullDay   BlockType = "full_day"
	BlockTimeRange BlockType = "time_range"
)

// CreateRequest запрос на блокировку времени (даты и время в часовом поясе бизнеса)
type CreateRequest struct {
	BlockType BlockType `json:"block_type" validate:"required,oneof=full_day time_range"`
	StartDate string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string    `json:"end_date" validate:"omitempty,datetime=2006-01-02"` // пусто = StartDate
	StartTime string    `json:"start_time" validate:"required_if=BlockType time_range,omitempty,datetime=15:04"`
	EndTime   string    `json:"end_time" validate:"required_if=BlockType time_range,omitempty,datetime=15:04"`
	Reason    *string   `json:"reason" validate:"omitempty,max=500"`
}

// BlockedTimeResponse блокировка в ответе
type BlockedTimeResponse struct {
	ID            string    `json:"id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	Reason        *string   `json:"reason"`
	IsAllDay      bool      `json:"is_all_day"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromDomain конвертирует доменную блокировку в ответ
func FromDomain(b *domain.BlockedInterval) *BlockedTimeResponse {
	return &BlockedTimeResponse{
		ID:            b.ID.String(),
		StartDatetime: b.StartAt,
		EndDatetime:   b.EndAt,
		Reason:        b.Reason,
		IsAllDay:      b.IsAllDay,
		CreatedAt:     b.CreatedAt,
	}
}
