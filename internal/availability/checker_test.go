package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const (
	therapistA int64 = 101
	therapistB int64 = 102
)

func workingShift(therapistID int64, breaks ...domain.TimeInterval) domain.Shift {
	return domain.Shift{
		ID:          1,
		TherapistID: therapistID,
		ShopID:      10,
		Date:        at(5, 0, 0),
		StartAt:     at(5, 10, 0),
		EndAt:       at(5, 19, 0),
		BreakSlots:  breaks,
		Status:      domain.ShiftStatusWorking,
	}
}

func occupying(therapistID int64, start, end time.Time) domain.Reservation {
	return domain.Reservation{
		ID:            1,
		TherapistID:   therapistID,
		ShopID:        10,
		StartAt:       start,
		OccupiedEndAt: end,
		ServiceEndAt:  end,
		Status:        domain.StatusConfirmed,
	}
}

func TestIsAvailable_InsideShift(t *testing.T) {
	shifts := []domain.Shift{workingShift(therapistA)}
	candidate := domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0))

	ok, debug := IsAvailable(therapistA, shifts, nil, candidate, at(5, 9, 0))

	assert.True(t, ok)
	assert.Empty(t, debug.RejectedReasons)
	assert.Equal(t, int64(1), debug.MatchedShiftID)
}

func TestIsAvailable_NoMatchingShift(t *testing.T) {
	shifts := []domain.Shift{workingShift(therapistA)}

	tests := []struct {
		name      string
		candidate domain.TimeInterval
	}{
		{"before shift", domain.NewTimeInterval(at(5, 9, 0), at(5, 10, 0))},
		{"crosses shift end", domain.NewTimeInterval(at(5, 18, 30), at(5, 19, 30))},
		{"wrong day", domain.NewTimeInterval(at(6, 11, 0), at(6, 12, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, debug := IsAvailable(therapistA, shifts, nil, tt.candidate, at(5, 9, 0))
			assert.False(t, ok)
			assert.Equal(t, []domain.RejectReason{domain.ReasonNoMatchingShift}, debug.RejectedReasons)
		})
	}
}

func TestIsAvailable_UnbookableShift(t *testing.T) {
	shift := workingShift(therapistA)
	shift.Status = domain.ShiftStatusUnavailable
	candidate := domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0))

	ok, debug := IsAvailable(therapistA, []domain.Shift{shift}, nil, candidate, at(5, 9, 0))

	assert.False(t, ok)
	assert.Contains(t, debug.RejectedReasons, domain.ReasonNoMatchingShift)
}

func TestIsAvailable_BreakConflict(t *testing.T) {
	lunch := domain.NewTimeInterval(at(5, 13, 0), at(5, 14, 0))
	shifts := []domain.Shift{workingShift(therapistA, lunch)}

	ok, debug := IsAvailable(therapistA, shifts, nil,
		domain.NewTimeInterval(at(5, 13, 30), at(5, 14, 30)), at(5, 9, 0))
	assert.False(t, ok)
	assert.Equal(t, []domain.RejectReason{domain.ReasonBreakConflict}, debug.RejectedReasons)

	// Touching the break boundary is allowed
	ok, _ = IsAvailable(therapistA, shifts, nil,
		domain.NewTimeInterval(at(5, 14, 0), at(5, 15, 0)), at(5, 9, 0))
	assert.True(t, ok)
}

func TestIsAvailable_BreakOutsideShiftIgnored(t *testing.T) {
	// Break entirely outside the shift window has no effect
	stray := domain.NewTimeInterval(at(5, 20, 0), at(5, 21, 0))
	shifts := []domain.Shift{workingShift(therapistA, stray)}

	ok, _ := IsAvailable(therapistA, shifts, nil,
		domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0)), at(5, 9, 0))
	assert.True(t, ok)
}

func TestIsAvailable_DegenerateBreakIgnored(t *testing.T) {
	inverted := domain.NewTimeInterval(at(5, 14, 0), at(5, 13, 0))
	shifts := []domain.Shift{workingShift(therapistA, inverted)}

	ok, _ := IsAvailable(therapistA, shifts, nil,
		domain.NewTimeInterval(at(5, 13, 0), at(5, 14, 0)), at(5, 9, 0))
	assert.True(t, ok)
}

func TestIsAvailable_ReservationConflict(t *testing.T) {
	shifts := []domain.Shift{workingShift(therapistA)}
	reservations := []domain.Reservation{
		occupying(therapistA, at(5, 11, 0), at(5, 12, 35)),
	}

	ok, debug := IsAvailable(therapistA, shifts, reservations,
		domain.NewTimeInterval(at(5, 12, 0), at(5, 13, 0)), at(5, 9, 0))
	assert.False(t, ok)
	assert.Equal(t, []domain.RejectReason{domain.ReasonOverlapExistingReservation}, debug.RejectedReasons)

	// Starting exactly at the occupied end is fine
	ok, _ = IsAvailable(therapistA, shifts, reservations,
		domain.NewTimeInterval(at(5, 12, 35), at(5, 13, 35)), at(5, 9, 0))
	assert.True(t, ok)
}

func TestIsAvailable_CrossTherapistReservationNeverBlocks(t *testing.T) {
	shifts := []domain.Shift{workingShift(therapistA)}
	reservations := []domain.Reservation{
		occupying(therapistB, at(5, 11, 0), at(5, 13, 0)),
	}

	ok, _ := IsAvailable(therapistA, shifts, reservations,
		domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0)), at(5, 9, 0))
	assert.True(t, ok)
}

func TestIsAvailable_HoldBlocksUntilExpiry(t *testing.T) {
	shifts := []domain.Shift{workingShift(therapistA)}

	hold := occupying(therapistA, at(5, 11, 0), at(5, 12, 0))
	hold.Status = domain.StatusHold
	hold.ReservedUntil = ptr.Ptr(at(5, 10, 15))
	reservations := []domain.Reservation{hold}

	candidate := domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0))

	// Before reserved_until the hold occupies the window
	ok, debug := IsAvailable(therapistA, shifts, reservations, candidate, at(5, 10, 0))
	require.False(t, ok)
	assert.Contains(t, debug.RejectedReasons, domain.ReasonOverlapExistingReservation)

	// After reserved_until the hold no longer blocks
	ok, _ = IsAvailable(therapistA, shifts, reservations, candidate, at(5, 10, 30))
	assert.True(t, ok)
}

func TestIsAvailable_CancelledReservationIgnored(t *testing.T) {
	shifts := []domain.Shift{workingShift(therapistA)}

	cancelled := occupying(therapistA, at(5, 11, 0), at(5, 12, 0))
	cancelled.Status = domain.StatusCancelledByUser

	ok, _ := IsAvailable(therapistA, shifts, []domain.Reservation{cancelled},
		domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0)), at(5, 9, 0))
	assert.True(t, ok)
}

func TestIsAvailable_MalformedReservationIgnored(t *testing.T) {
	shifts := []domain.Shift{workingShift(therapistA)}

	// Inverted occupied interval degrades to no effect
	broken := occupying(therapistA, at(5, 12, 0), at(5, 11, 0))

	ok, _ := IsAvailable(therapistA, shifts, []domain.Reservation{broken},
		domain.NewTimeInterval(at(5, 11, 0), at(5, 12, 0)), at(5, 9, 0))
	assert.True(t, ok)
}
