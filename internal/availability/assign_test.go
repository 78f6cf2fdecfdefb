package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

func availableCandidate(therapistID int64) Candidate {
	shift := workingShift(therapistID)
	shift.ID = therapistID
	return Candidate{
		TherapistID: therapistID,
		Shifts:      []domain.Shift{shift},
	}
}

func busyCandidate(therapistID int64) Candidate {
	c := availableCandidate(therapistID)
	c.Reservations = []domain.Reservation{
		occupying(therapistID, at(5, 10, 0), at(5, 19, 0)),
	}
	return c
}

func TestAssignForFree_FirstAvailableWins(t *testing.T) {
	window := domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0))

	chosen, debug := AssignForFree(
		[]Candidate{availableCandidate(therapistA), availableCandidate(therapistB)},
		window, nil, at(5, 9, 0))

	require.NotNil(t, chosen)
	assert.Equal(t, therapistA, *chosen)
	assert.Empty(t, debug.RejectedReasons)
	assert.Len(t, debug.Candidates, 2)
	assert.Equal(t, scoreBaseline, debug.Candidates[0].Score)
}

func TestAssignForFree_PreferredStaffBeatsOrder(t *testing.T) {
	window := domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0))

	// The preferred therapist is listed second but still wins
	chosen, debug := AssignForFree(
		[]Candidate{availableCandidate(therapistA), availableCandidate(therapistB)},
		window, ptr.Ptr(therapistB), at(5, 9, 0))

	require.NotNil(t, chosen)
	assert.Equal(t, therapistB, *chosen)
	assert.Equal(t, scorePreferredStaff, debug.Candidates[1].Score)
}

func TestAssignForFree_BusyPreferredFallsBack(t *testing.T) {
	window := domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0))

	chosen, debug := AssignForFree(
		[]Candidate{busyCandidate(therapistB), availableCandidate(therapistA)},
		window, ptr.Ptr(therapistB), at(5, 9, 0))

	require.NotNil(t, chosen)
	assert.Equal(t, therapistA, *chosen)

	// The busy preferred candidate's reason is still recorded
	assert.False(t, debug.Candidates[0].Available)
	assert.Contains(t, debug.Candidates[0].Reasons, domain.ReasonOverlapExistingReservation)
}

func TestAssignForFree_NoAvailableTherapist(t *testing.T) {
	window := domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0))

	chosen, debug := AssignForFree(
		[]Candidate{busyCandidate(therapistA), busyCandidate(therapistB)},
		window, nil, at(5, 9, 0))

	assert.Nil(t, chosen)
	assert.Contains(t, debug.RejectedReasons, domain.ReasonNoAvailableTherapist)
	// Each candidate's individual reason is preserved for diagnosability
	assert.Contains(t, debug.RejectedReasons, domain.ReasonOverlapExistingReservation)
	assert.Len(t, debug.Candidates, 2)
}

func TestAssignForFree_EmptyCandidates(t *testing.T) {
	window := domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0))

	chosen, debug := AssignForFree(nil, window, nil, at(5, 9, 0))

	assert.Nil(t, chosen)
	assert.Equal(t, []domain.RejectReason{domain.ReasonNoAvailableTherapist}, debug.RejectedReasons)
}

func TestAssignForFree_Deterministic(t *testing.T) {
	window := domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0))
	candidates := []Candidate{availableCandidate(therapistA), availableCandidate(therapistB)}

	first, _ := AssignForFree(candidates, window, nil, at(5, 9, 0))
	for i := 0; i < 10; i++ {
		again, _ := AssignForFree(candidates, window, nil, at(5, 9, 0))
		require.NotNil(t, again)
		assert.Equal(t, *first, *again)
	}
}
