package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// UpdateSettingsRequest частичное обновление настроек: ключ -> значение.
// Значения приходят как JSON-скаляры (число, строка, bool).
type UpdateSettingsRequest struct {
	Values map[string]interface{}
}

// Response модели

// SettingsResponse типизированные настройки бизнеса
type SettingsResponse struct {
	BufferTimeMinutes       int    `json:"buffer_time_minutes"`
	SlotIntervalMinutes     int    `json:"slot_interval_minutes"`
	MinBookingNoticeMinutes int    `json:"min_booking_notice_minutes"`
	RequireApproval         bool   `json:"require_approval"`
	SearchWindowDays        int    `json:"search_window_days"`
	SearchWindows           int    `json:"search_windows"`
	NotificationEmail       string `json:"notification_email"`
}

// FromDomainSettings конвертирует доменные настройки в ответ
func FromDomainSettings(s domain.Settings) *SettingsResponse {
	return &SettingsResponse{
		BufferTimeMinutes:       s.BufferMinutes,
		SlotIntervalMinutes:     s.SlotCadenceMinutes,
		MinBookingNoticeMinutes: s.LeadTimeMinutes,
		RequireApproval:         s.RequireApproval,
		SearchWindowDays:        s.SearchWindowDays,
		SearchWindows:           s.SearchWindows,
		NotificationEmail:       s.NotificationEmail,
	}
}
