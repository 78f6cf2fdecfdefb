package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ConfirmReservationRequest запрос на подтверждение hold
type ConfirmReservationRequest struct {
	UserID int64 `json:"userId"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetGuestReservationsRequest запрос на получение бронирований гостя
type GetGuestReservationsRequest struct {
	GuestID int64   `json:"guestId"`
	Status  *string `json:"status,omitempty"`
}

// GetShopReservationsRequest запрос на получение бронирований салона
type GetShopReservationsRequest struct {
	UserID          int64      `json:"userId"`
	ShopID          int64      `json:"shopId"`
	TherapistID     *int64     `json:"therapistId,omitempty"`     // Фильтр по мастеру (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и истёкшие
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetShopReservationsRequest) ToDomainFilter() (domain.ShopReservationsFilter, error) {
	filter := domain.ShopReservationsFilter{
		ShopID:          r.ShopID,
		TherapistID:     r.TherapistID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64  `json:"id"`
	GuestID     int64  `json:"guestId"`
	ShopID      int64  `json:"shopId"`
	TherapistID int64  `json:"therapistId"`
	CourseID    *int64 `json:"courseId,omitempty"`

	StartAt       time.Time `json:"startAt"`
	ServiceEndAt  time.Time `json:"serviceEndAt"`
	OccupiedEndAt time.Time `json:"occupiedEndAt"`

	ServiceDurationMinutes int `json:"serviceDurationMinutes"`
	ExtensionMinutes       int `json:"extensionMinutes"`
	BufferMinutes          int `json:"bufferMinutes"`

	Status        string     `json:"status"`
	ReservedUntil *time.Time `json:"reservedUntil,omitempty"`

	CourseName  string  `json:"courseName,omitempty"`
	CoursePrice float64 `json:"coursePrice,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует доменную модель в response
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                     res.ID,
		GuestID:                res.GuestID,
		ShopID:                 res.ShopID,
		TherapistID:            res.TherapistID,
		CourseID:               res.CourseID,
		StartAt:                res.StartAt,
		ServiceEndAt:           res.ServiceEndAt,
		OccupiedEndAt:          res.OccupiedEndAt,
		ServiceDurationMinutes: res.ServiceDurationMinutes,
		ExtensionMinutes:       res.ExtensionMinutes,
		BufferMinutes:          res.BufferMinutes,
		Status:                 string(res.Status),
		ReservedUntil:          res.ReservedUntil,
		CourseName:             res.CourseName,
		CoursePrice:            res.CoursePrice,
		Notes:                  res.Notes,
		CancellationReason:     res.CancellationReason,
		CancelledAt:            res.CancelledAt,
		CreatedAt:              res.CreatedAt,
		UpdatedAt:              res.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список доменных моделей в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, FromDomainReservation(res))
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}

// ToDomainReservationStatus конвертирует строку в доменный статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusHold,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusCancelledByShop,
		domain.StatusNoShow,
		domain.StatusExpired:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
