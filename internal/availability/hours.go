// Package availability implements the pure reservation availability
// and booking-time computation engine.
//
// Every function here is synchronous, holds no state and operates on
// already-loaded data plus a caller-supplied "now". Persistence,
// transport and authorization live in the surrounding layers; the
// engine only reconciles time intervals and returns decisions.
package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// WithinBusinessHours reports whether [startAt, endAt) lies fully
// inside one concrete open segment of the shop.
//
// For the calendar date of startAt and the previous date (overnight
// segments spill into the next day) the weekly schedule, or a date
// override when present, is expanded into concrete intervals. Partial
// containment split across two segments does not count: a booking must
// fit inside a single segment, and an occupied end crossing the close
// time even by one minute rejects the candidate.
func WithinBusinessHours(cfg *domain.BusinessHoursConfig, startAt, endAt time.Time) bool {
	if cfg == nil || cfg.Location == nil {
		return false
	}

	candidate := domain.NewTimeInterval(startAt.In(cfg.Location), endAt.In(cfg.Location))
	if !candidate.IsValid() {
		return false
	}

	day := dateOf(candidate.Start, cfg.Location)
	for _, anchor := range []time.Time{day.AddDate(0, 0, -1), day} {
		for _, open := range openIntervalsOn(cfg, anchor) {
			if open.Contains(candidate) {
				return true
			}
		}
	}

	return false
}

// openIntervalsOn expands the segments effective on the given date into
// concrete intervals anchored on that date. Malformed segments are
// skipped so one bad record cannot close the whole day.
func openIntervalsOn(cfg *domain.BusinessHoursConfig, date time.Time) []domain.TimeInterval {
	segments, _ := cfg.SegmentsOn(date)
	if len(segments) == 0 {
		return nil
	}

	intervals := make([]domain.TimeInterval, 0, len(segments))
	for _, seg := range segments {
		open, err := atTimeOfDay(date, seg.Open, cfg.Location)
		if err != nil {
			continue
		}
		close, err := atTimeOfDay(date, seg.Close, cfg.Location)
		if err != nil {
			continue
		}
		if seg.IsOvernight() {
			close = close.AddDate(0, 0, 1)
		}
		interval := domain.NewTimeInterval(open, close)
		if interval.IsValid() {
			intervals = append(intervals, interval)
		}
	}
	return intervals
}

// atTimeOfDay combines a calendar date with a wall-clock "15:04" string
func atTimeOfDay(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.TimeFormat, clock, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// dateOf truncates a timestamp to midnight in loc
func dateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
