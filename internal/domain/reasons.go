package domain

// RejectReason explains why a candidate interval was rejected by an
// availability evaluator. Reasons are returned as structured results,
// never as errors: callers aggregate them across therapists and show
// the most specific applicable reason to the guest.
type RejectReason string

const (
	// ReasonNoMatchingShift no bookable shift fully contains the candidate
	ReasonNoMatchingShift RejectReason = "no_matching_shift"
	// ReasonBreakConflict the candidate overlaps an in-shift break
	ReasonBreakConflict RejectReason = "break_conflict"
	// ReasonOverlapExistingReservation the candidate overlaps an occupying reservation
	ReasonOverlapExistingReservation RejectReason = "overlap_existing_reservation"
	// ReasonOutsideBusinessHours the candidate does not fit inside a single open segment
	ReasonOutsideBusinessHours RejectReason = "outside_business_hours"
	// ReasonNoAvailableTherapist aggregate outcome when every free-assignment candidate failed
	ReasonNoAvailableTherapist RejectReason = "no_available_therapist"
)
