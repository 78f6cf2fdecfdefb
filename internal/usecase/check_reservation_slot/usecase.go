package check_reservation_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/shoprules"
	shopClient "github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case для проверки доступности слота
type UseCase struct {
	reservationRepo ReservationRepository
	shiftRepo       ShiftRepository
	rulesRepo       RulesRepository
	shopClient      ShopServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	shiftRepo ShiftRepository,
	rulesRepo RulesRepository,
	shopClient ShopServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		shiftRepo:       shiftRepo,
		rulesRepo:       rulesRepo,
		shopClient:      shopClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case проверки доступности слота
// Проверка читающая: никакой hold не создаётся, результат может
// устареть к моменту создания брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckReservationSlot: shop=%d, therapist=%d, startAt=%s",
		req.ShopID, req.TherapistID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckReservationSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	shop, err := uc.shopClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, shopClient.ErrShopNotFound) {
			uc.logger.Warn("CheckReservationSlot: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CheckReservationSlot: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 4. Проверяем, что мастер числится в салоне
	if err := validateTherapistInShop(shop, req.TherapistID); err != nil {
		uc.logger.Warn("CheckReservationSlot: therapist id=%d not in shop id=%d", req.TherapistID, req.ShopID)
		return nil, err
	}

	// 5. Строим конфигурацию часов работы (таймзона салона)
	hoursConfig, err := shop.BusinessHours()
	if err != nil {
		uc.logger.Error("CheckReservationSlot: invalid business hours for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: invalid business hours: %v", ErrInternal, err)
	}

	// 6. Получаем правила бронирования салона
	rules, err := uc.rulesRepo.GetByShopID(ctx, req.ShopID)
	if err != nil && !errors.Is(err, rulesRepo.ErrRulesNotFound) {
		uc.logger.Error("CheckReservationSlot: failed to get booking rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking rules: %v", ErrInternal, err)
	}

	if rules == nil {
		defaults := domain.DefaultBookingRules(req.ShopID)
		rules = &defaults
		uc.logger.Info("CheckReservationSlot: using default booking rules for shop=%d", req.ShopID)
	}

	// 7. Вычисляем временные границы брони
	times, err := availability.ComputeBookingTimes(
		shop.Menu(), *rules, req.StartAt, req.CourseID, req.DurationMinutes, req.ExtensionMinutes,
	)
	if err != nil {
		uc.logger.Warn("CheckReservationSlot: failed to compute booking times: %v", err)
		return nil, mapTimesError(err)
	}

	// 8. Загружаем смены и бронирования мастера
	var shifts []*domain.Shift
	for _, date := range shiftDatesFor(times.StartAt, hoursConfig.Location) {
		dayShifts, err := uc.shiftRepo.GetForTherapistOnDate(ctx, req.TherapistID, date)
		if err != nil {
			uc.logger.Error("CheckReservationSlot: failed to get shifts for therapist id=%d: %v", req.TherapistID, err)
			return nil, fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
		}
		shifts = append(shifts, dayShifts...)
	}

	reservations, err := uc.reservationRepo.GetForTherapistInRange(ctx, req.TherapistID, times.StartAt, times.OccupiedEndAt)
	if err != nil {
		uc.logger.Error("CheckReservationSlot: failed to get reservations for therapist id=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 9. Проверяем доступность занятого интервала
	available, debug := availability.CheckReservationSlot(
		hoursConfig, req.TherapistID, shiftValues(shifts), reservationValues(reservations),
		times.StartAt, times.OccupiedEndAt, now,
	)

	response := &Response{
		Available:              available,
		RejectedReasons:        reasonStrings(debug.RejectedReasons),
		StartAt:                times.StartAt,
		ServiceEndAt:           times.ServiceEndAt,
		OccupiedEndAt:          times.OccupiedEndAt,
		ServiceDurationMinutes: times.ServiceDurationMinutes,
		ExtensionMinutes:       times.ExtensionMinutes,
		BufferMinutes:          times.BufferMinutes,
	}

	if debug.MatchedShiftID != 0 {
		response.MatchedShiftID = ptr.Ptr(debug.MatchedShiftID)
	}

	uc.logger.Info("CheckReservationSlot: shop=%d, therapist=%d, available=%t, reasons=%v",
		req.ShopID, req.TherapistID, available, response.RejectedReasons)

	return response, nil
}

// mapTimesError переводит ошибки калькулятора временных границ
// в ошибки usecase
func mapTimesError(err error) error {
	switch {
	case errors.Is(err, availability.ErrUnknownCourse):
		return ErrUnknownCourse
	case errors.Is(err, availability.ErrMissingDuration):
		return ErrMissingDuration
	case errors.Is(err, availability.ErrInvalidExtension):
		return ErrInvalidExtension
	default:
		return fmt.Errorf("%w: failed to compute booking times: %v", ErrInternal, err)
	}
}

// reasonStrings конвертирует причины отказа в строки для ответа
func reasonStrings(reasons []domain.RejectReason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, string(r))
	}
	return out
}
