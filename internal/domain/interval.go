package domain

import "time"

// Interval half-open range of absolute instants [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [startA, endA) and [startB, endB) intersect.
// Touching endpoints do not overlap.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}

// Overlaps reports whether i intersects other
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// IsValid returns true if End is strictly after Start
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}
