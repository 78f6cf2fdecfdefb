package expire_holds

import (
	"context"
	"errors"
	"fmt"
)

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("expire_holds: internal error")

// Response модель ответа с количеством освобождённых hold
type Response struct {
	ExpiredCount int64
}

// UseCase use case для освобождения истёкших hold
// Запускается фоновым тикером: переводит в expired все hold,
// чей reserved_until уже прошёл. Проверки доступности и без того
// игнорируют истёкшие hold, job только фиксирует статус в БД
type UseCase struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case освобождения истёкших hold
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	count, err := uc.reservationRepo.ExpireHolds(ctx, now)
	if err != nil {
		uc.logger.Error("ExpireHolds: failed to expire holds: %v", err)
		return nil, fmt.Errorf("%w: failed to expire holds: %v", ErrInternal, err)
	}

	if count > 0 {
		uc.logger.Info("ExpireHolds: expired %d holds", count)
	}

	return &Response{ExpiredCount: count}, nil
}
