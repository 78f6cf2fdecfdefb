package get_daily_slots

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.TherapistID != nil && *req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.GranularityMinutes != nil {
		g := *req.GranularityMinutes
		if g < domain.MinSlotGranularityMinutes || g > domain.MaxSlotGranularityMinutes {
			return fmt.Errorf("%w: granularity must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
		}
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

// reservationValues разыменовывает слайс указателей для передачи в проверки доступности
func reservationValues(reservations []*domain.Reservation) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, *r)
	}
	return out
}
