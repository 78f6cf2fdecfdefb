package domain

import "time"

// TimeInterval represents a half-open time interval [Start, End).
// All intervals handled by the engine are in the shop-local timezone.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval creates a half-open interval [start, end)
func NewTimeInterval(start, end time.Time) TimeInterval {
	return TimeInterval{Start: start, End: end}
}

// IsValid returns true if the interval has positive length
func (i TimeInterval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two half-open intervals overlap.
// Touching endpoints (a.End == b.Start) do NOT overlap.
//
// This predicate is the single source of truth for overlap checks:
// every layer of the engine goes through it so that list and detail
// views can never disagree on what counts as a conflict.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether other lies fully inside i
func (i TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Clip returns the part of i that lies within bounds.
// The result may be invalid (zero or negative length) when the
// intervals do not intersect; callers check IsValid.
func (i TimeInterval) Clip(bounds TimeInterval) TimeInterval {
	clipped := i
	if clipped.Start.Before(bounds.Start) {
		clipped.Start = bounds.Start
	}
	if clipped.End.After(bounds.End) {
		clipped.End = bounds.End
	}
	return clipped
}

// Duration returns the length of the interval
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// In returns the interval with both endpoints converted to loc.
// The instants are unchanged; only the wall-clock representation moves.
func (i TimeInterval) In(loc *time.Location) TimeInterval {
	return TimeInterval{Start: i.Start.In(loc), End: i.End.In(loc)}
}
