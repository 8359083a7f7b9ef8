package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
)

// PaymentMethod represents how the client pays for the appointment
type PaymentMethod string

const (
	PaymentInPerson PaymentMethod = "in_person"
	PaymentCard     PaymentMethod = "card"
)

// PaymentStatus represents the state of the online payment
type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "not_required"
	PaymentPending     PaymentStatus = "pending"
	PaymentPaid        PaymentStatus = "paid"
	PaymentFailed      PaymentStatus = "failed"
	PaymentRefunded    PaymentStatus = "refunded"
)

// Appointment represents a booked time range for one client and one service
type Appointment struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	ServiceID uuid.UUID
	StartAt   time.Time // absolute instant
	EndAt     time.Time // StartAt + service duration
	Status    AppointmentStatus

	ClientNotes *string
	AdminNotes  *string

	// CancellationToken opaque secret for accept/reject links and calendar export
	CancellationToken string

	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	PaymentReference *string

	// PlatformBookingID booking id on the upstream platform (platform backend only)
	PlatformBookingID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time range
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted || a.Status == StatusNoShow
}

// CanTransitionTo reports whether the status change is allowed:
// pending -> confirmed | cancelled; confirmed -> cancelled | completed | no_show
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted || next == StatusNoShow
	default:
		return false
	}
}

// Duration returns the appointment length
func (a *Appointment) Duration() time.Duration {
	return a.EndAt.Sub(a.StartAt)
}

// Interval returns the raw [StartAt, EndAt) range
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartAt, End: a.EndAt}
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	From             *time.Time         // StartAt >= From (опционально)
	To               *time.Time         // StartAt < To (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отмененные записи
}

// ParseAppointmentStatus validates a status string
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return status, true
	default:
		return "", false
	}
}
