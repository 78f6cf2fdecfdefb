package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Preference scores for free assignment. The explicit guest preference
// always beats a baseline-eligible candidate; ties keep input order.
const (
	scorePreferredStaff = 0.9
	scoreBaseline       = 0.5
)

// Candidate is one therapist considered for free assignment, together
// with the day's data needed to evaluate availability
type Candidate struct {
	TherapistID  int64
	Shifts       []domain.Shift
	Reservations []domain.Reservation
}

// CandidateResult records the outcome for one candidate so callers can
// show the specific obstruction per therapist
type CandidateResult struct {
	TherapistID int64
	Available   bool
	Score       float64
	Reasons     []domain.RejectReason
}

// AssignDebug aggregates per-candidate outcomes and the overall
// rejection reasons of a free-assignment run
type AssignDebug struct {
	Candidates      []CandidateResult
	RejectedReasons []domain.RejectReason
}

// AssignForFree picks a therapist for the exact window candidate among
// the given candidates. Evaluation order is input order and each
// candidate's check is independent and read-only, so callers may
// parallelize; the decision itself is deterministic: the available
// candidate with the highest score wins, first-in-order on ties.
//
// Returns nil and ReasonNoAvailableTherapist in the debug info when no
// candidate is available.
func AssignForFree(
	candidates []Candidate,
	candidate domain.TimeInterval,
	baseStaffID *int64,
	now time.Time,
) (*int64, AssignDebug) {
	debug := AssignDebug{
		Candidates:      make([]CandidateResult, 0, len(candidates)),
		RejectedReasons: []domain.RejectReason{},
	}

	var chosen *int64
	var bestScore float64

	for _, c := range candidates {
		available, checkDebug := IsAvailable(c.TherapistID, c.Shifts, c.Reservations, candidate, now)

		result := CandidateResult{
			TherapistID: c.TherapistID,
			Available:   available,
			Reasons:     checkDebug.RejectedReasons,
		}

		if available {
			result.Score = scoreOf(c.TherapistID, baseStaffID)
			if chosen == nil || result.Score > bestScore {
				id := c.TherapistID
				chosen = &id
				bestScore = result.Score
			}
		} else {
			debug.RejectedReasons = append(debug.RejectedReasons, checkDebug.RejectedReasons...)
		}

		debug.Candidates = append(debug.Candidates, result)
	}

	if chosen == nil {
		debug.RejectedReasons = append(debug.RejectedReasons, domain.ReasonNoAvailableTherapist)
	}

	return chosen, debug
}

func scoreOf(therapistID int64, baseStaffID *int64) float64 {
	if baseStaffID != nil && *baseStaffID == therapistID {
		return scorePreferredStaff
	}
	return scoreBaseline
}
