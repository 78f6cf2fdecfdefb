package domain

// Default configuration values
const (
	DefaultBaseBufferMinutes      = 10
	DefaultMaxExtensionMinutes    = 60
	DefaultExtensionStepMinutes   = 15
	DefaultSlotGranularityMinutes = 30
	DefaultHoldTTLMinutes         = 15
)

// Business validation constants
const (
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 120
	MinExtensionStepMinutes     = 5
	MaxExtensionStepMinutes     = 60
	MaxExtensionCapMinutes      = 240
	MinSlotGranularityMinutes   = 10
	MaxSlotGranularityMinutes   = 120
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих время
// Используется для фильтрации при загрузке бронирований дня
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByUser,
	StatusCancelledByShop,
	StatusNoShow,
	StatusExpired,
}

// OccupyingStatuses список статусов, занимающих время
// Hold занимает время только до истечения reserved_until,
// окончательное решение принимает Reservation.IsOccupying
var OccupyingStatuses = []ReservationStatus{
	StatusHold,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
