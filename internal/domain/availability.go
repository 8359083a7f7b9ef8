package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrInvalidDayOfWeek возвращается для дня недели вне диапазона 0-6
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")

	// ErrCrossMidnightWindow возвращается, когда окно работы не укладывается в одни сутки
	ErrCrossMidnightWindow = errors.New("availability window must start before it ends on the same day")
)

// WeeklyAvailabilityRule standing open hours for one day of week (0 = Sunday)
type WeeklyAvailabilityRule struct {
	DayOfWeek int
	IsActive  bool
	StartTime types.TimeString // wall-clock, business time zone
	EndTime   types.TimeString // wall-clock, business time zone
	UpdatedAt time.Time
}

// Validate checks the rule. Cross-midnight windows are not supported.
func (r *WeeklyAvailabilityRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("%w: got %d", ErrInvalidDayOfWeek, r.DayOfWeek)
	}
	if err := r.StartTime.Validate(); err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	if err := r.EndTime.Validate(); err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return fmt.Errorf("%w: %s-%s", ErrCrossMidnightWindow, r.StartTime, r.EndTime)
	}
	return nil
}

// Window resolved open hours for a single calendar day
type Window struct {
	Open  bool
	Start types.TimeString
	End   types.TimeString
}

// ClosedWindow returns a closed day
func ClosedWindow() Window {
	return Window{Open: false}
}

// BlockedInterval explicit unavailability independent of the weekly rules
type BlockedInterval struct {
	ID        uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	Reason    *string
	IsAllDay  bool
	CreatedAt time.Time
}

// Interval returns the raw [StartAt, EndAt) range
func (b *BlockedInterval) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}
