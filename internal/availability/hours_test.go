package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var jst = time.FixedZone("JST", 9*60*60)

func hoursConfig() *domain.BusinessHoursConfig {
	return &domain.BusinessHoursConfig{
		Location: jst,
		Weekly: map[time.Weekday][]domain.OpenSegment{
			time.Monday:    {{Open: "18:00", Close: "02:00"}}, // overnight into Tuesday
			time.Wednesday: {{Open: "10:00", Close: "13:00"}, {Open: "15:00", Close: "20:00"}},
			time.Thursday:  {{Open: "10:00", Close: "20:00"}},
		},
		Overrides: map[string][]domain.OpenSegment{},
	}
}

func at(day, hour, min int) time.Time {
	// March 2026: the 2nd is a Monday
	return time.Date(2026, 3, day, hour, min, 0, 0, jst)
}

func TestWithinBusinessHours_PlainSegment(t *testing.T) {
	cfg := hoursConfig()

	// Thursday 10:00-20:00
	assert.True(t, WithinBusinessHours(cfg, at(5, 10, 0), at(5, 12, 0)))
	assert.True(t, WithinBusinessHours(cfg, at(5, 19, 0), at(5, 20, 0)))
	assert.False(t, WithinBusinessHours(cfg, at(5, 9, 30), at(5, 11, 0)))
	// End one minute past close: no grace period
	assert.False(t, WithinBusinessHours(cfg, at(5, 19, 0), at(5, 20, 1)))
}

func TestWithinBusinessHours_OvernightSegment(t *testing.T) {
	cfg := hoursConfig()

	// Monday 18:00-02:00: a candidate entirely after midnight on
	// Tuesday still belongs to Monday's segment
	assert.True(t, WithinBusinessHours(cfg, at(3, 1, 0), at(3, 2, 0)))
	// Spanning midnight inside the segment
	assert.True(t, WithinBusinessHours(cfg, at(2, 23, 0), at(3, 1, 30)))
	// Pushing one minute past the 02:00 close is rejected
	assert.False(t, WithinBusinessHours(cfg, at(3, 1, 30), at(3, 2, 1)))
	// Before opening
	assert.False(t, WithinBusinessHours(cfg, at(2, 17, 30), at(2, 19, 0)))
}

func TestWithinBusinessHours_NoSplitAcrossSegments(t *testing.T) {
	cfg := hoursConfig()

	// Wednesday has 10:00-13:00 and 15:00-20:00; a candidate crossing
	// the gap fits in neither single segment
	assert.False(t, WithinBusinessHours(cfg, at(4, 12, 0), at(4, 16, 0)))
	assert.True(t, WithinBusinessHours(cfg, at(4, 10, 0), at(4, 13, 0)))
	assert.True(t, WithinBusinessHours(cfg, at(4, 15, 0), at(4, 17, 0)))
}

func TestWithinBusinessHours_Overrides(t *testing.T) {
	cfg := hoursConfig()

	// Override replaces the weekly entry entirely
	cfg.Overrides["2026-03-05"] = []domain.OpenSegment{{Open: "12:00", Close: "15:00"}}
	assert.True(t, WithinBusinessHours(cfg, at(5, 12, 0), at(5, 14, 0)))
	assert.False(t, WithinBusinessHours(cfg, at(5, 10, 0), at(5, 12, 0)))

	// Empty override means closed all day
	cfg.Overrides["2026-03-05"] = []domain.OpenSegment{}
	assert.False(t, WithinBusinessHours(cfg, at(5, 12, 0), at(5, 14, 0)))
}

func TestWithinBusinessHours_ClosedWeekday(t *testing.T) {
	cfg := hoursConfig()

	// Friday has no weekly entry
	assert.False(t, WithinBusinessHours(cfg, at(6, 10, 0), at(6, 11, 0)))
}

func TestWithinBusinessHours_InvalidInput(t *testing.T) {
	cfg := hoursConfig()

	// Inverted and zero-length candidates are rejected
	assert.False(t, WithinBusinessHours(cfg, at(5, 12, 0), at(5, 11, 0)))
	assert.False(t, WithinBusinessHours(cfg, at(5, 12, 0), at(5, 12, 0)))
	assert.False(t, WithinBusinessHours(nil, at(5, 10, 0), at(5, 11, 0)))
}

func TestWithinBusinessHours_MalformedSegmentSkipped(t *testing.T) {
	cfg := hoursConfig()
	cfg.Weekly[time.Thursday] = []domain.OpenSegment{
		{Open: "bad", Close: "20:00"},
		{Open: "10:00", Close: "20:00"},
	}

	// The malformed segment is skipped, the valid one still applies
	assert.True(t, WithinBusinessHours(cfg, at(5, 10, 0), at(5, 12, 0)))
}

func TestWithinBusinessHours_NormalizesTimezone(t *testing.T) {
	cfg := hoursConfig()

	// Same instants expressed in UTC: Thursday 10:00 JST == 01:00 UTC
	startUTC := at(5, 10, 0).UTC()
	endUTC := at(5, 12, 0).UTC()
	assert.True(t, WithinBusinessHours(cfg, startUTC, endUTC))
}
