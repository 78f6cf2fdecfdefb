package availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

func TestBuildDailySlots_OpenAndBlocked(t *testing.T) {
	cfg := hoursConfig()
	shifts := []domain.Shift{workingShift(therapistA)} // Thursday 10:00-19:00
	reservations := []domain.Reservation{
		occupying(therapistA, at(5, 12, 0), at(5, 13, 0)),
	}

	slots := BuildDailySlots(cfg, therapistA, shifts, reservations, at(5, 0, 0), 30, at(5, 9, 0))
	require.NotEmpty(t, slots)

	byStart := make(map[string]SlotStatus, len(slots))
	for _, slot := range slots {
		byStart[slot.Interval.Start.Format("15:04")] = slot.Status
	}

	assert.Equal(t, SlotOpen, byStart["10:00"])
	assert.Equal(t, SlotBlocked, byStart["12:00"])
	assert.Equal(t, SlotBlocked, byStart["12:30"])
	assert.Equal(t, SlotOpen, byStart["13:00"])
	// Business hours run to 20:00 but the shift ends at 19:00
	assert.Equal(t, SlotBlocked, byStart["19:00"])
}

func TestBuildDailySlots_HoldMarksTentative(t *testing.T) {
	cfg := hoursConfig()
	shifts := []domain.Shift{workingShift(therapistA)}

	hold := occupying(therapistA, at(5, 12, 0), at(5, 13, 0))
	hold.Status = domain.StatusHold
	hold.ReservedUntil = ptr.Ptr(at(5, 11, 0))

	slots := BuildDailySlots(cfg, therapistA, shifts, []domain.Reservation{hold}, at(5, 0, 0), 30, at(5, 9, 0))

	var tentative, open int
	for _, slot := range slots {
		switch slot.Status {
		case SlotTentative:
			tentative++
			// Collapsed to blocked at the external boundary
			assert.Equal(t, SlotBlocked, slot.Status.Public())
		case SlotOpen:
			open++
			assert.Equal(t, SlotOpen, slot.Status.Public())
		}
	}
	assert.Equal(t, 2, tentative) // 12:00 and 12:30
	assert.Greater(t, open, 0)
}

func TestBuildDailySlots_OvernightSegment(t *testing.T) {
	cfg := hoursConfig()

	// Monday shift covering the overnight segment 18:00-02:00
	shift := domain.Shift{
		ID:          7,
		TherapistID: therapistA,
		ShopID:      10,
		Date:        at(2, 0, 0),
		StartAt:     at(2, 18, 0),
		EndAt:       at(3, 2, 0),
		Status:      domain.ShiftStatusWorking,
	}

	slots := BuildDailySlots(cfg, therapistA, []domain.Shift{shift}, nil, at(2, 0, 0), 30, at(2, 12, 0))
	require.NotEmpty(t, slots)

	// The timeline extends past midnight: the last slot starts Tuesday 01:30
	last := slots[len(slots)-1]
	assert.Equal(t, at(3, 1, 30), last.Interval.Start)
	assert.Equal(t, SlotOpen, last.Status)
}

func TestNextOpenSlot_FromSameTimeline(t *testing.T) {
	cfg := hoursConfig()
	shifts := []domain.Shift{workingShift(therapistA)}
	reservations := []domain.Reservation{
		occupying(therapistA, at(5, 10, 0), at(5, 11, 0)),
	}

	slots := BuildDailySlots(cfg, therapistA, shifts, reservations, at(5, 0, 0), 30, at(5, 10, 15))

	next, ok := NextOpenSlot(slots, at(5, 10, 15))
	require.True(t, ok)
	assert.Equal(t, at(5, 11, 0), next.Interval.Start)

	// The surfaced slot is an element of the timeline
	found := false
	for _, slot := range slots {
		if slot.Interval == next.Interval {
			found = true
			assert.Equal(t, SlotOpen, slot.Status)
		}
	}
	assert.True(t, found)
}

func TestNextOpenSlot_NoneLeft(t *testing.T) {
	cfg := hoursConfig()
	shifts := []domain.Shift{workingShift(therapistA)}

	slots := BuildDailySlots(cfg, therapistA, shifts, nil, at(5, 0, 0), 30, at(5, 9, 0))

	_, ok := NextOpenSlot(slots, at(5, 23, 0))
	assert.False(t, ok)
}

// TestBuildDailySlots_AgreesWithChecker generates pseudo-random shift,
// break and reservation layouts and verifies that every slot the
// timeline marks open independently passes the single-slot checker for
// the same inputs. List and detail views must never drift.
func TestBuildDailySlots_AgreesWithChecker(t *testing.T) {
	cfg := hoursConfig()
	rng := rand.New(rand.NewSource(42))
	day := at(5, 0, 0)

	for i := 0; i < 200; i++ {
		shiftStart := at(5, 9+rng.Intn(4), 0)
		shiftEnd := shiftStart.Add(time.Duration(4+rng.Intn(7)) * time.Hour)

		shift := domain.Shift{
			ID:          int64(i),
			TherapistID: therapistA,
			ShopID:      10,
			Date:        day,
			StartAt:     shiftStart,
			EndAt:       shiftEnd,
			Status:      domain.ShiftStatusWorking,
		}

		for b := 0; b < rng.Intn(3); b++ {
			breakStart := shiftStart.Add(time.Duration(rng.Intn(8)) * time.Hour)
			shift.BreakSlots = append(shift.BreakSlots, domain.TimeInterval{
				Start: breakStart,
				End:   breakStart.Add(time.Duration(15+rng.Intn(90)) * time.Minute),
			})
		}

		var reservations []domain.Reservation
		for r := 0; r < rng.Intn(4); r++ {
			resStart := at(5, 10+rng.Intn(9), 30*rng.Intn(2))
			res := occupying(therapistA, resStart, resStart.Add(time.Duration(30+rng.Intn(120))*time.Minute))
			if rng.Intn(3) == 0 {
				res.Status = domain.StatusHold
				res.ReservedUntil = ptr.Ptr(at(5, 8+rng.Intn(6), 0))
			}
			reservations = append(reservations, res)
		}

		now := at(5, 8, 0)
		shifts := []domain.Shift{shift}
		slots := BuildDailySlots(cfg, therapistA, shifts, reservations, day, 30, now)

		for _, slot := range slots {
			if slot.Status != SlotOpen {
				continue
			}
			ok, debug := CheckReservationSlot(cfg, therapistA, shifts, reservations,
				slot.Interval.Start, slot.Interval.End, now)
			require.True(t, ok,
				"iteration %d: open slot %s-%s failed the single-slot checker: %v",
				i, slot.Interval.Start.Format("15:04"), slot.Interval.End.Format("15:04"),
				debug.RejectedReasons)
		}
	}
}

func TestCheckReservationSlot_OutsideBusinessHours(t *testing.T) {
	cfg := hoursConfig()
	shifts := []domain.Shift{workingShift(therapistA)}

	// Thursday closes at 20:00; the shift alone is not enough
	ok, debug := CheckReservationSlot(cfg, therapistA, shifts, nil, at(5, 20, 0), at(5, 21, 0), at(5, 9, 0))

	assert.False(t, ok)
	assert.Equal(t, []domain.RejectReason{domain.ReasonOutsideBusinessHours}, debug.RejectedReasons)
}

func TestCheckReservationSlot_SameAnswerForIdenticalInputs(t *testing.T) {
	// Guest and admin paths share this function: identical inputs must
	// produce identical answers regardless of who asks
	cfg := hoursConfig()
	shifts := []domain.Shift{workingShift(therapistA)}
	reservations := []domain.Reservation{occupying(therapistA, at(5, 12, 0), at(5, 13, 0))}

	guestOK, guestDebug := CheckReservationSlot(cfg, therapistA, shifts, reservations, at(5, 12, 30), at(5, 13, 30), at(5, 9, 0))
	adminOK, adminDebug := CheckReservationSlot(cfg, therapistA, shifts, reservations, at(5, 12, 30), at(5, 13, 30), at(5, 9, 0))

	assert.Equal(t, guestOK, adminOK)
	assert.Equal(t, guestDebug.RejectedReasons, adminDebug.RejectedReasons)
}
