package domain

import "time"

// BookingRules per-shop booking configuration.
// Invariant: ExtensionStepMinutes > 0 for any rules presented to the
// booking time calculator; validated on write in the rules service.
type BookingRules struct {
	ID                   int64
	ShopID               int64
	BaseBufferMinutes    int // safety buffer appended after the service interval
	MaxExtensionMinutes  int // cap on a requested extension
	ExtensionStepMinutes int // requested extensions must be exact multiples

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultBookingRules returns the rules applied when a shop has no
// explicit configuration
func DefaultBookingRules(shopID int64) BookingRules {
	return BookingRules{
		ShopID:               shopID,
		BaseBufferMinutes:    DefaultBaseBufferMinutes,
		MaxExtensionMinutes:  DefaultMaxExtensionMinutes,
		ExtensionStepMinutes: DefaultExtensionStepMinutes,
	}
}

// AllowsExtension reports whether the requested extension is a valid
// non-negative multiple of the step that does not exceed the cap
func (r *BookingRules) AllowsExtension(minutes int) bool {
	if minutes < 0 || minutes > r.MaxExtensionMinutes {
		return false
	}
	if r.ExtensionStepMinutes <= 0 {
		return minutes == 0
	}
	return minutes%r.ExtensionStepMinutes == 0
}
