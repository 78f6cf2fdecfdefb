package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Debug carries the structured outcome of an availability check.
// RejectedReasons is always non-nil so callers can distinguish
// "available" from the specific obstruction.
type Debug struct {
	MatchedShiftID  int64
	RejectedReasons []domain.RejectReason
}

func (d *Debug) reject(reason domain.RejectReason) {
	d.RejectedReasons = append(d.RejectedReasons, reason)
}

// IsAvailable decides whether candidate is free for the given therapist:
// inside some bookable shift, outside all of that shift's breaks, and
// not overlapping any occupying reservation of the same therapist.
//
// Reservations of other therapists never block. Holds count as
// occupying only while their reserved_until has not passed, as of now.
// Malformed shift, break or reservation records degrade to "no effect"
// rather than aborting the evaluation.
func IsAvailable(
	therapistID int64,
	shifts []domain.Shift,
	reservations []domain.Reservation,
	candidate domain.TimeInterval,
	now time.Time,
) (bool, Debug) {
	debug := Debug{RejectedReasons: []domain.RejectReason{}}

	if !candidate.IsValid() {
		debug.reject(domain.ReasonNoMatchingShift)
		return false, debug
	}

	shift := findContainingShift(therapistID, shifts, candidate)
	if shift == nil {
		debug.reject(domain.ReasonNoMatchingShift)
		return false, debug
	}
	debug.MatchedShiftID = shift.ID

	if breakConflicts(shift, candidate) {
		debug.reject(domain.ReasonBreakConflict)
		return false, debug
	}

	if reservationConflicts(therapistID, reservations, candidate, now) {
		debug.reject(domain.ReasonOverlapExistingReservation)
		return false, debug
	}

	return true, debug
}

// findContainingShift returns the first bookable shift of the therapist
// whose window fully contains the candidate
func findContainingShift(therapistID int64, shifts []domain.Shift, candidate domain.TimeInterval) *domain.Shift {
	for i := range shifts {
		shift := &shifts[i]
		if shift.TherapistID != therapistID {
			continue
		}
		if !shift.IsValid() || !shift.IsBookable() {
			continue
		}
		if shift.Window().Contains(candidate) {
			return shift
		}
	}
	return nil
}

// breakConflicts reports whether the candidate overlaps any break of
// the shift. Breaks are clipped to the shift window first: a break
// lying outside its shift degrades to no effect, per the lenient
// data-integrity policy.
func breakConflicts(shift *domain.Shift, candidate domain.TimeInterval) bool {
	window := shift.Window()
	for _, slot := range shift.BreakSlots {
		clipped := slot.Clip(window)
		if !clipped.IsValid() {
			continue
		}
		if candidate.Overlaps(clipped) {
			return true
		}
	}
	return false
}

// reservationConflicts reports whether the candidate overlaps an
// occupying reservation of the same therapist
func reservationConflicts(therapistID int64, reservations []domain.Reservation, candidate domain.TimeInterval, now time.Time) bool {
	for i := range reservations {
		res := &reservations[i]
		if res.TherapistID != therapistID {
			continue
		}
		if !res.IsOccupying(now) {
			continue
		}
		occupied := res.OccupiedInterval()
		if !occupied.IsValid() {
			continue
		}
		if candidate.Overlaps(occupied) {
			return true
		}
	}
	return false
}
