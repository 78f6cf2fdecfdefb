package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	rulesRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/shoprules"
	shopClient "github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	shiftRepo       ShiftRepository
	rulesRepo       RulesRepository
	shopClient      ShopServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	holdTTL         time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	shiftRepo ShiftRepository,
	rulesRepo RulesRepository,
	shopClient ShopServiceClient,
	txManager TransactionManager,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		shiftRepo:       shiftRepo,
		rulesRepo:       rulesRepo,
		shopClient:      shopClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		holdTTL:         holdTTL,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Создаёт hold: бронь занимает время до reserved_until, подтверждение
// переводит её в confirmed. Проверка доступности и запись выполняются
// в сериализуемой транзакции для предотвращения двойного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: guest=%d, shop=%d, startAt=%s",
		req.GuestID, req.ShopID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон (через кэширующий клиент ShopService)
	shop, err := uc.shopClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, shopClient.ErrShopNotFound) {
			uc.logger.Warn("CreateReservation: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateReservation: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 4. Строим конфигурацию часов работы (таймзона салона)
	hoursConfig, err := shop.BusinessHours()
	if err != nil {
		uc.logger.Error("CreateReservation: invalid business hours for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: invalid business hours: %v", ErrInternal, err)
	}

	// 5. Проверяем, что явно выбранный мастер числится в салоне
	if req.TherapistID != nil {
		if err := validateTherapistInShop(shop, *req.TherapistID); err != nil {
			uc.logger.Warn("CreateReservation: therapist id=%d not in shop id=%d", *req.TherapistID, req.ShopID)
			return nil, err
		}
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Идемпотентный повтор: если бронь с этим ключом уже есть - возвращаем её
		if req.IdempotencyKey != nil {
			existing, err := uc.reservationRepo.FindByIdempotencyKey(txCtx, req.ShopID, *req.IdempotencyKey)
			if err != nil && !errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Error("CreateReservation: failed to check idempotency key: %v", err)
				return fmt.Errorf("%w: failed to check idempotency key: %v", ErrInternal, err)
			}
			if existing != nil {
				uc.logger.Info("CreateReservation: idempotent replay, returning reservation id=%d", existing.ID)
				result = existing
				return nil
			}
		}

		// 6.2. Получаем правила бронирования салона
		rules, err := uc.rulesRepo.GetByShopID(txCtx, req.ShopID)
		if err != nil && !errors.Is(err, rulesRepo.ErrRulesNotFound) {
			uc.logger.Error("CreateReservation: failed to get booking rules: %v", err)
			return fmt.Errorf("%w: failed to get booking rules: %v", ErrInternal, err)
		}

		// Если правила не настроены, используем дефолтные значения
		if rules == nil {
			defaults := domain.DefaultBookingRules(req.ShopID)
			rules = &defaults
			uc.logger.Info("CreateReservation: using default booking rules for shop=%d", req.ShopID)
		}

		// 6.3. Вычисляем временные границы брони (услуга + продление + буфер)
		times, err := availability.ComputeBookingTimes(
			shop.Menu(), *rules, req.StartAt, req.CourseID, req.DurationMinutes, req.ExtensionMinutes,
		)
		if err != nil {
			uc.logger.Warn("CreateReservation: failed to compute booking times: %v", err)
			return mapTimesError(err)
		}

		// 6.4. Назначаем мастера: явно выбранного или через свободное назначение
		var therapistID int64
		if req.TherapistID != nil {
			therapistID = *req.TherapistID
			if err := uc.checkTherapistSlot(txCtx, hoursConfig, therapistID, times, now); err != nil {
				return err
			}
		} else {
			assigned, err := uc.assignTherapist(txCtx, hoursConfig, shop, req.PreferredStaffID, times, now)
			if err != nil {
				return err
			}
			therapistID = assigned
		}

		// 6.5. Определяем данные курса для денормализации
		var courseName string
		var coursePrice float64
		if req.CourseID != nil {
			if course := domain.FindCourse(shop.Menu(), *req.CourseID); course != nil {
				courseName = course.Name
				coursePrice = course.Price
			}
		}

		// 6.6. Создаем hold с ограниченным сроком действия
		reservedUntil := now.Add(uc.holdTTL)
		reservation := &domain.Reservation{
			GuestID:                req.GuestID,
			ShopID:                 req.ShopID,
			TherapistID:            therapistID,
			CourseID:               req.CourseID,
			StartAt:                times.StartAt,
			ServiceEndAt:           times.ServiceEndAt,
			OccupiedEndAt:          times.OccupiedEndAt,
			ServiceDurationMinutes: times.ServiceDurationMinutes,
			ExtensionMinutes:       times.ExtensionMinutes,
			BufferMinutes:          times.BufferMinutes,
			Status:                 domain.StatusHold,
			ReservedUntil:          &reservedUntil,
			IdempotencyKey:         req.IdempotencyKey,
			CourseName:             courseName,
			CoursePrice:            coursePrice,
			Notes:                  req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Гонка по ключу идемпотентности: параллельный запрос успел первым
			if errors.Is(err, reservationRepo.ErrDuplicateIdempotencyKey) && req.IdempotencyKey != nil {
				existing, findErr := uc.reservationRepo.FindByIdempotencyKey(txCtx, req.ShopID, *req.IdempotencyKey)
				if findErr == nil {
					uc.logger.Info("CreateReservation: duplicate idempotency key, returning reservation id=%d", existing.ID)
					result = existing
					return nil
				}
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, therapist=%d, status=%s",
		result.ID, result.TherapistID, result.Status)

	return toResponse(result), nil
}

// checkTherapistSlot проверяет доступность явно выбранного мастера
// на занятый интервал брони
func (uc *UseCase) checkTherapistSlot(
	ctx context.Context,
	hoursConfig *domain.BusinessHoursConfig,
	therapistID int64,
	times *availability.BookingTimes,
	now time.Time,
) error {
	shifts, err := uc.loadShifts(ctx, therapistID, times.StartAt, hoursConfig.Location)
	if err != nil {
		return err
	}

	reservations, err := uc.reservationRepo.GetForTherapistInRange(ctx, therapistID, times.StartAt, times.OccupiedEndAt)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get reservations for therapist id=%d: %v", therapistID, err)
		return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	ok, debug := availability.CheckReservationSlot(
		hoursConfig, therapistID, shiftValues(shifts), reservationValues(reservations),
		times.StartAt, times.OccupiedEndAt, now,
	)
	if !ok {
		uc.logger.Warn("CreateReservation: slot rejected for therapist id=%d: %v", therapistID, debug.RejectedReasons)
		return reasonsToError(debug.RejectedReasons)
	}

	return nil
}

// assignTherapist подбирает мастера через свободное назначение
// среди всех мастеров салона
func (uc *UseCase) assignTherapist(
	ctx context.Context,
	hoursConfig *domain.BusinessHoursConfig,
	shop *shopClient.Shop,
	preferredStaffID *int64,
	times *availability.BookingTimes,
	now time.Time,
) (int64, error) {
	candidateInterval := times.OccupiedInterval()

	// Часы работы общие для всех кандидатов - проверяем один раз
	if !availability.WithinBusinessHours(hoursConfig, candidateInterval.Start, candidateInterval.End) {
		uc.logger.Warn("CreateReservation: interval outside business hours for shop id=%d", shop.ID)
		return 0, ErrOutsideBusinessHours
	}

	candidates := make([]availability.Candidate, 0, len(shop.TherapistIDs))
	for _, therapistID := range shop.TherapistIDs {
		shifts, err := uc.loadShifts(ctx, therapistID, times.StartAt, hoursConfig.Location)
		if err != nil {
			return 0, err
		}

		reservations, err := uc.reservationRepo.GetForTherapistInRange(ctx, therapistID, times.StartAt, times.OccupiedEndAt)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations for therapist id=%d: %v", therapistID, err)
			return 0, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		candidates = append(candidates, availability.Candidate{
			TherapistID:  therapistID,
			Shifts:       shiftValues(shifts),
			Reservations: reservationValues(reservations),
		})
	}

	chosen, debug := availability.AssignForFree(candidates, candidateInterval, preferredStaffID, now)
	if chosen == nil {
		uc.logger.Warn("CreateReservation: no available therapist in shop id=%d: %v", shop.ID, debug.RejectedReasons)
		return 0, ErrNoAvailableTherapist
	}

	uc.logger.Info("CreateReservation: assigned therapist id=%d for shop id=%d", *chosen, shop.ID)
	return *chosen, nil
}

// loadShifts загружает смены мастера, способные вмещать интервал:
// за рабочую дату начала и за предыдущий день (ночные смены)
func (uc *UseCase) loadShifts(ctx context.Context, therapistID int64, startAt time.Time, loc *time.Location) ([]*domain.Shift, error) {
	var shifts []*domain.Shift

	for _, date := range shiftDatesFor(startAt, loc) {
		dayShifts, err := uc.shiftRepo.GetForTherapistOnDate(ctx, therapistID, date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get shifts for therapist id=%d: %v", therapistID, err)
			return nil, fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
		}
		shifts = append(shifts, dayShifts...)
	}

	return shifts, nil
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

// toResponse конвертирует доменную модель в ответ usecase
func toResponse(res *domain.Reservation) *Response {
	return &Response{
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
		CreatedAt:              res.CreatedAt,
		UpdatedAt:              res.UpdatedAt,
	}
}
