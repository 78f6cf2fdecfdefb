package domain

import "time"

// OpenSegment is one open/close pair within a business day.
// Times are wall-clock strings in TimeFormat ("15:04").
// Close <= Open denotes a segment that crosses midnight into the
// next calendar day (e.g. 18:00-02:00).
type OpenSegment struct {
	Open  string
	Close string
}

// IsOvernight returns true if the segment crosses midnight
func (s OpenSegment) IsOvernight() bool {
	return s.Close <= s.Open
}

// BusinessHoursConfig describes when a shop is open.
// Weekly holds the regular per-weekday segments; Overrides (keyed by
// a DateFormat string) fully replace the weekly entry for that date,
// including an empty list meaning "closed all day".
//
// Location is the site-local timezone every timestamp entering the
// engine is normalized into before any computation.
type BusinessHoursConfig struct {
	Location  *time.Location
	Weekly    map[time.Weekday][]OpenSegment
	Overrides map[string][]OpenSegment
}

// SegmentsOn returns the open segments effective on the given date,
// taking overrides into account. The bool reports whether an override
// was applied.
func (c *BusinessHoursConfig) SegmentsOn(date time.Time) ([]OpenSegment, bool) {
	key := date.In(c.Location).Format(DateFormat)
	if segments, ok := c.Overrides[key]; ok {
		return segments, true
	}
	return c.Weekly[date.In(c.Location).Weekday()], false
}
