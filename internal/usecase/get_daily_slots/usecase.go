package get_daily_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	shopClient "github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
)

// UseCase use case для построения дневного таймлайна слотов
type UseCase struct {
	reservationRepo ReservationRepository
	shiftRepo       ShiftRepository
	shopClient      ShopServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	shiftRepo ShiftRepository,
	shopClient ShopServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		shiftRepo:       shiftRepo,
		shopClient:      shopClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case построения таймлайнов
// Таймлайн привязан к рабочей дате: слоты ночных сегментов выходят
// за полночь, но принадлежат дню начала сегмента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDailySlots: shop=%d, date=%s", req.ShopID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDailySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	shop, err := uc.shopClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, shopClient.ErrShopNotFound) {
			uc.logger.Warn("GetDailySlots: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetDailySlots: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 4. Строим конфигурацию часов работы (таймзона салона)
	hoursConfig, err := shop.BusinessHours()
	if err != nil {
		uc.logger.Error("GetDailySlots: invalid business hours for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: invalid business hours: %v", ErrInternal, err)
	}

	// 5. Админский вид доступен только менеджерам салона
	if req.AdminView && !shop.HasManager(req.AdminUserID) {
		uc.logger.Warn("GetDailySlots: user id=%d is not a manager of shop id=%d", req.AdminUserID, req.ShopID)
		return nil, ErrAccessDenied
	}

	// 6. Определяем список мастеров
	therapistIDs := shop.TherapistIDs
	if req.TherapistID != nil {
		if err := validateTherapistInShop(shop, *req.TherapistID); err != nil {
			uc.logger.Warn("GetDailySlots: therapist id=%d not in shop id=%d", *req.TherapistID, req.ShopID)
			return nil, err
		}
		therapistIDs = []int64{*req.TherapistID}
	}

	// 7. Шаг сетки слотов
	granularity := domain.DefaultSlotGranularityMinutes
	if req.GranularityMinutes != nil {
		granularity = *req.GranularityMinutes
	}

	// Рабочая дата в таймзоне салона
	local := req.Date.In(hoursConfig.Location)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, hoursConfig.Location)

	// Бронирования грузим с запасом в сутки: ночные сегменты выходят за полночь
	rangeFrom := day
	rangeTo := day.AddDate(0, 0, 2)

	// 8. Смены всех мастеров салона на рабочую дату одним запросом
	shopShifts, err := uc.shiftRepo.GetForShopOnDate(ctx, req.ShopID, day)
	if err != nil {
		uc.logger.Error("GetDailySlots: failed to get shifts for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
	}

	shiftsByTherapist := make(map[int64][]domain.Shift, len(therapistIDs))
	for _, shift := range shopShifts {
		shiftsByTherapist[shift.TherapistID] = append(shiftsByTherapist[shift.TherapistID], *shift)
	}

	// 9. Строим таймлайн каждого мастера
	timelines := make([]TherapistTimeline, 0, len(therapistIDs))
	for _, therapistID := range therapistIDs {
		reservations, err := uc.reservationRepo.GetForTherapistInRange(ctx, therapistID, rangeFrom, rangeTo)
		if err != nil {
			uc.logger.Error("GetDailySlots: failed to get reservations for therapist id=%d: %v", therapistID, err)
			return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		slots := availability.BuildDailySlots(
			hoursConfig, therapistID, shiftsByTherapist[therapistID], reservationValues(reservations),
			day, granularity, now,
		)

		timeline := TherapistTimeline{
			TherapistID: therapistID,
			Slots:       toSlots(slots, req.AdminView),
		}

		if next, ok := availability.NextOpenSlot(slots, now); ok {
			s := toSlot(next, req.AdminView)
			timeline.NextOpenSlot = &s
		}

		timelines = append(timelines, timeline)
	}

	uc.logger.Info("GetDailySlots: shop=%d, date=%s, therapists=%d",
		req.ShopID, day.Format(domain.DateFormat), len(timelines))

	return &Response{
		ShopID:    req.ShopID,
		Date:      day,
		Timelines: timelines,
	}, nil
}

// toSlots конвертирует слоты таймлайна в модель ответа
// Вне админского вида tentative схлопывается в blocked
func toSlots(slots []availability.Slot, adminView bool) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlot(s, adminView))
	}
	return out
}

func toSlot(s availability.Slot, adminView bool) Slot {
	status := s.Status
	if !adminView {
		status = status.Public()
	}
	return Slot{
		StartAt: s.Interval.Start,
		EndAt:   s.Interval.End,
		Status:  string(status),
	}
}
