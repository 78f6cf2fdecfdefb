package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ShopID           int64   `json:"shopId"`
	TherapistID      *int64  `json:"therapistId,omitempty"`      // nil = свободное назначение
	PreferredStaffID *int64  `json:"preferredStaffId,omitempty"` // Предпочтительный мастер при свободном назначении
	CourseID         *int64  `json:"courseId,omitempty"`
	DurationMinutes  *int    `json:"durationMinutes,omitempty"`
	ExtensionMinutes int     `json:"extensionMinutes,omitempty"`
	StartAt          string  `json:"startAt"` // RFC3339, например "2026-03-05T14:00:00+09:00"
	IdempotencyKey   *string `json:"idempotencyKey,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64  `json:"id"`
	GuestID     int64  `json:"guestId"`
	ShopID      int64  `json:"shopId"`
	TherapistID int64  `json:"therapistId"`
	CourseID    *int64 `json:"courseId,omitempty"`

	StartAt       string `json:"startAt"`
	ServiceEndAt  string `json:"serviceEndAt"`
	OccupiedEndAt string `json:"occupiedEndAt"`

	ServiceDurationMinutes int `json:"serviceDurationMinutes"`
	ExtensionMinutes       int `json:"extensionMinutes"`
	BufferMinutes          int `json:"bufferMinutes"`

	Status        string  `json:"status"`
	ReservedUntil *string `json:"reservedUntil,omitempty"`

	CourseName  string  `json:"courseName,omitempty"`
	CoursePrice float64 `json:"coursePrice,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(guestID int64) (*createReservation.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		GuestID:          guestID,
		ShopID:           r.ShopID,
		TherapistID:      r.TherapistID,
		PreferredStaffID: r.PreferredStaffID,
		CourseID:         r.CourseID,
		DurationMinutes:  r.DurationMinutes,
		ExtensionMinutes: r.ExtensionMinutes,
		StartAt:          startAt,
		IdempotencyKey:   r.IdempotencyKey,
		Notes:            r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	out := &ReservationResponse{
		ID:                     resp.ID,
		GuestID:                resp.GuestID,
		ShopID:                 resp.ShopID,
		TherapistID:            resp.TherapistID,
		CourseID:               resp.CourseID,
		StartAt:                resp.StartAt.Format(time.RFC3339),
		ServiceEndAt:           resp.ServiceEndAt.Format(time.RFC3339),
		OccupiedEndAt:          resp.OccupiedEndAt.Format(time.RFC3339),
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		ExtensionMinutes:       resp.ExtensionMinutes,
		BufferMinutes:          resp.BufferMinutes,
		Status:                 resp.Status,
		CourseName:             resp.CourseName,
		CoursePrice:            resp.CoursePrice,
		Notes:                  resp.Notes,
		CreatedAt:              resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.ReservedUntil != nil {
		formatted := resp.ReservedUntil.Format(time.RFC3339)
		out.ReservedUntil = &formatted
	}

	return out
}
