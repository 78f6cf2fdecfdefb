package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	// StatusHold provisional reservation that occupies time until
	// confirmed or until ReservedUntil passes
	StatusHold            ReservationStatus = "hold"
	StatusConfirmed       ReservationStatus = "confirmed"
	StatusInProgress      ReservationStatus = "in_progress"
	StatusCompleted       ReservationStatus = "completed"
	StatusCancelledByUser ReservationStatus = "cancelled_by_user"
	StatusCancelledByShop ReservationStatus = "cancelled_by_shop"
	StatusNoShow          ReservationStatus = "no_show"
	StatusExpired         ReservationStatus = "expired"
)

// Reservation represents a therapist reservation in the system
type Reservation struct {
	ID          int64
	GuestID     int64
	ShopID      int64
	TherapistID int64
	CourseID    *int64

	StartAt       time.Time
	ServiceEndAt  time.Time // start + course duration + extension; shown to the guest
	OccupiedEndAt time.Time // service end + buffer; blocks other bookings

	ServiceDurationMinutes int
	ExtensionMinutes       int
	BufferMinutes          int

	Status ReservationStatus

	// Hold bookkeeping: a hold occupies time until ReservedUntil,
	// keyed by an idempotency token supplied by the client
	ReservedUntil  *time.Time
	IdempotencyKey *string

	// Denormalized data for history
	CourseName  string
	CoursePrice float64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying reports whether the reservation blocks its time window
// as of now. Cancelled, no-show and expired reservations never block;
// a hold blocks only while ReservedUntil has not passed.
func (r *Reservation) IsOccupying(now time.Time) bool {
	switch r.Status {
	case StatusCancelledByUser, StatusCancelledByShop, StatusNoShow, StatusExpired:
		return false
	case StatusHold:
		return r.ReservedUntil != nil && now.Before(*r.ReservedUntil)
	default:
		return true
	}
}

// OccupiedInterval returns the interval [StartAt, OccupiedEndAt)
// used by availability checks
func (r *Reservation) OccupiedInterval() TimeInterval {
	return TimeInterval{Start: r.StartAt, End: r.OccupiedEndAt}
}

// ServiceInterval returns the interval [StartAt, ServiceEndAt)
// shown to the guest
func (r *Reservation) ServiceInterval() TimeInterval {
	return TimeInterval{Start: r.StartAt, End: r.ServiceEndAt}
}

// IsHold returns true if the reservation is a provisional hold
func (r *Reservation) IsHold() bool {
	return r.Status == StatusHold
}

// CanBeConfirmed returns true if the reservation is a hold that can be confirmed
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusHold
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusHold || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByUser || r.Status == StatusCancelledByShop
}

// ShopReservationsFilter фильтр для получения бронирований салона
type ShopReservationsFilter struct {
	ShopID          int64              // Обязательный параметр
	TherapistID     *int64             // Фильтр по мастеру (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли неактивные бронирования (отмененные, истёкшие)
}
