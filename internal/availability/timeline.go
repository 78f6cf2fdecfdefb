package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SlotStatus internal three-state status of a timeline slot.
// The public API collapses tentative to blocked; the richer state is
// kept internally for admin views that distinguish a hard conflict
// from a not-yet-confirmed hold.
type SlotStatus string

const (
	SlotOpen      SlotStatus = "open"
	SlotTentative SlotStatus = "tentative"
	SlotBlocked   SlotStatus = "blocked"
)

// Public collapses the internal status to the two-state external contract
func (s SlotStatus) Public() SlotStatus {
	if s == SlotOpen {
		return SlotOpen
	}
	return SlotBlocked
}

// Slot one element of a therapist's daily timeline
type Slot struct {
	Interval domain.TimeInterval
	Status   SlotStatus
}

// CheckReservationSlot decides whether the exact window [startAt, endAt)
// is bookable for the therapist: inside business hours, inside a
// bookable shift, outside breaks, clear of occupying reservations.
//
// This is the single-slot code path; BuildDailySlots calls through the
// same evaluators, so a slot the timeline marks open always passes this
// check for the same inputs.
func CheckReservationSlot(
	cfg *domain.BusinessHoursConfig,
	therapistID int64,
	shifts []domain.Shift,
	reservations []domain.Reservation,
	startAt, endAt time.Time,
	now time.Time,
) (bool, Debug) {
	if !WithinBusinessHours(cfg, startAt, endAt) {
		return false, Debug{RejectedReasons: []domain.RejectReason{domain.ReasonOutsideBusinessHours}}
	}

	candidate := domain.NewTimeInterval(startAt, endAt)
	return IsAvailable(therapistID, shifts, reservations, candidate, now)
}

// BuildDailySlots derives the ordered slot timeline of one therapist
// for the business date day. Slots are generated with a fixed
// granularity inside every open segment effective on that date
// (overnight segments extend the timeline past midnight) and tagged
// open, tentative or blocked via the same evaluators the single-slot
// checker uses.
//
// A slot blocked only by an active hold is tentative; everything else
// that fails the check is blocked.
func BuildDailySlots(
	cfg *domain.BusinessHoursConfig,
	therapistID int64,
	shifts []domain.Shift,
	reservations []domain.Reservation,
	day time.Time,
	granularityMinutes int,
	now time.Time,
) []Slot {
	if cfg == nil || cfg.Location == nil || granularityMinutes <= 0 {
		return nil
	}

	granularity := time.Duration(granularityMinutes) * time.Minute
	anchor := dateOf(day, cfg.Location)

	var slots []Slot
	for _, open := range openIntervalsOn(cfg, anchor) {
		for t := open.Start; !t.Add(granularity).After(open.End); t = t.Add(granularity) {
			interval := domain.NewTimeInterval(t, t.Add(granularity))
			slots = append(slots, Slot{
				Interval: interval,
				Status:   slotStatus(cfg, therapistID, shifts, reservations, interval, now),
			})
		}
	}

	return slots
}

// NextOpenSlot returns the nearest future open slot (start >= now) of
// the timeline. The surfaced "next slot" is always an element of the
// same timeline the list view renders.
func NextOpenSlot(slots []Slot, now time.Time) (Slot, bool) {
	for _, slot := range slots {
		if slot.Status != SlotOpen {
			continue
		}
		if slot.Interval.Start.Before(now) {
			continue
		}
		return slot, true
	}
	return Slot{}, false
}

func slotStatus(
	cfg *domain.BusinessHoursConfig,
	therapistID int64,
	shifts []domain.Shift,
	reservations []domain.Reservation,
	interval domain.TimeInterval,
	now time.Time,
) SlotStatus {
	ok, _ := CheckReservationSlot(cfg, therapistID, shifts, reservations, interval.Start, interval.End, now)
	if ok {
		return SlotOpen
	}

	// Re-check with holds excluded: if only an active hold stands in
	// the way, the slot is tentative rather than hard-blocked.
	withoutHolds := excludeHolds(reservations)
	if len(withoutHolds) != len(reservations) {
		ok, _ = CheckReservationSlot(cfg, therapistID, shifts, withoutHolds, interval.Start, interval.End, now)
		if ok {
			return SlotTentative
		}
	}

	return SlotBlocked
}

func excludeHolds(reservations []domain.Reservation) []domain.Reservation {
	filtered := make([]domain.Reservation, 0, len(reservations))
	for _, res := range reservations {
		if res.IsHold() {
			continue
		}
		filtered = append(filtered, res)
	}
	return filtered
}
