package domain

import "time"

// ShiftStatus marks whether a shift accepts bookings
type ShiftStatus string

const (
	// ShiftStatusWorking the therapist works and accepts bookings
	ShiftStatusWorking ShiftStatus = "working"
	// ShiftStatusUnavailable the therapist is present but not bookable
	// (training, meetings, admin work)
	ShiftStatusUnavailable ShiftStatus = "unavailable"
)

// Shift represents a therapist's working window on a specific date.
// BreakSlots are expected to lie inside [StartAt, EndAt); slots outside
// the shift are ignored by the availability checker, never treated as
// a fatal error.
type Shift struct {
	ID          int64
	TherapistID int64
	ShopID      int64
	Date        time.Time
	StartAt     time.Time
	EndAt       time.Time
	BreakSlots  []TimeInterval
	Status      ShiftStatus
}

// Window returns the shift working window as a half-open interval
func (s *Shift) Window() TimeInterval {
	return TimeInterval{Start: s.StartAt, End: s.EndAt}
}

// IsBookable returns true if the shift accepts bookings
func (s *Shift) IsBookable() bool {
	return s.Status == ShiftStatusWorking
}

// IsValid returns true if the shift window has positive length
func (s *Shift) IsValid() bool {
	return s.StartAt.Before(s.EndAt)
}
