package check_reservation_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	if req.CourseID != nil && *req.CourseID <= 0 {
		return fmt.Errorf("%w: courseID must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.ExtensionMinutes < 0 {
		return fmt.Errorf("%w: extensionMinutes must not be negative", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	return nil
}

// validateTherapistInShop проверяет, что мастер числится в салоне
func validateTherapistInShop(shop *shopservice.Shop, therapistID int64) error {
	for _, id := range shop.TherapistIDs {
		if id == therapistID {
			return nil
		}
	}
	return ErrTherapistNotInShop
}

// shiftDatesFor возвращает рабочие даты, чьи смены могут вмещать
// интервал: дата начала и предыдущий день (ночная смена)
func shiftDatesFor(startAt time.Time, loc *time.Location) []time.Time {
	local := startAt.In(loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return []time.Time{date.AddDate(0, 0, -1), date}
}

// shiftValues разыменовывает слайс указателей для передачи в проверки доступности
func shiftValues(shifts []*domain.Shift) []domain.Shift {
	out := make([]domain.Shift, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, *s)
	}
	return out
}

// reservationValues разыменовывает слайс указателей для передачи в проверки доступности
func reservationValues(reservations []*domain.Reservation) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, *r)
	}
	return out
}
