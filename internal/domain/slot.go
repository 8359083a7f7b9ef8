package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot candidate start time annotated with bookability
type Slot struct {
	Time      types.TimeString
	Available bool
}

// DaySlots all candidates for one calendar day in ascending order
type DaySlots struct {
	Date  time.Time
	Slots []Slot
}

// HasAvailable returns true if at least one slot is bookable
func (d *DaySlots) HasAvailable() bool {
	for _, s := range d.Slots {
		if s.Available {
			return true
		}
	}
	return false
}

// CountAvailable returns the number of bookable slots
func (d *DaySlots) CountAvailable() int {
	n := 0
	for _, s := range d.Slots {
		if s.Available {
			n++
		}
	}
	return n
}

// IsAvailable reports whether the slot starting at t is bookable
func (d *DaySlots) IsAvailable(t types.TimeString) bool {
	for _, s := range d.Slots {
		if s.Time == t {
			return s.Available
		}
	}
	return false
}
