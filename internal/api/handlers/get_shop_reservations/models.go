package get_shop_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// ParseQuery разбирает query-параметры фильтрации в модель сервиса
// Поддерживаются therapistId, startDate, endDate (YYYY-MM-DD),
// status и includeInactive
func ParseQuery(query url.Values, shopID, userID int64) (*models.GetShopReservationsRequest, error) {
	req := &models.GetShopReservationsRequest{
		ShopID: shopID,
		UserID: userID,
	}

	if raw := query.Get("therapistId"); raw != "" {
		therapistID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.TherapistID = ptr.Ptr(therapistID)
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = ptr.Ptr(startDate)
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		// Конец периода включает весь день
		req.EndDate = ptr.Ptr(endDate.AddDate(0, 0, 1))
	}

	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
