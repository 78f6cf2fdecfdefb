package check_slot

import (
	"time"

	checkSlot "github.com/m04kA/SMC-ReservationService/internal/usecase/check_reservation_slot"
)

// CheckSlotRequest HTTP request model
type CheckSlotRequest struct {
	TherapistID      int64  `json:"therapistId"`
	CourseID         *int64 `json:"courseId,omitempty"`
	DurationMinutes  *int   `json:"durationMinutes,omitempty"`
	ExtensionMinutes int    `json:"extensionMinutes,omitempty"`
	StartAt          string `json:"startAt"` // RFC3339
}

// CheckSlotResponse HTTP response model
type CheckSlotResponse struct {
	Available       bool     `json:"available"`
	RejectedReasons []string `json:"rejectedReasons,omitempty"`
	MatchedShiftID  *int64   `json:"matchedShiftId,omitempty"`

	StartAt       string `json:"startAt"`
	ServiceEndAt  string `json:"serviceEndAt"`
	OccupiedEndAt string `json:"occupiedEndAt"`

	ServiceDurationMinutes int `json:"serviceDurationMinutes"`
	ExtensionMinutes       int `json:"extensionMinutes"`
	BufferMinutes          int `json:"bufferMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckSlotRequest) ToUseCaseRequest(shopID int64) (*checkSlot.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &checkSlot.Request{
		ShopID:           shopID,
		TherapistID:      r.TherapistID,
		CourseID:         r.CourseID,
		DurationMinutes:  r.DurationMinutes,
		ExtensionMinutes: r.ExtensionMinutes,
		StartAt:          startAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *CheckSlotResponse {
	return &CheckSlotResponse{
		Available:              resp.Available,
		RejectedReasons:        resp.RejectedReasons,
		MatchedShiftID:         resp.MatchedShiftID,
		StartAt:                resp.StartAt.Format(time.RFC3339),
		ServiceEndAt:           resp.ServiceEndAt.Format(time.RFC3339),
		OccupiedEndAt:          resp.OccupiedEndAt.Format(time.RFC3339),
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		ExtensionMinutes:       resp.ExtensionMinutes,
		BufferMinutes:          resp.BufferMinutes,
	}
}
