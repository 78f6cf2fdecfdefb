package check_reservation_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetForTherapistInRange(ctx context.Context, therapistID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// ShiftRepository интерфейс репозитория смен мастеров
type ShiftRepository interface {
	GetForTherapistOnDate(ctx context.Context, therapistID int64, date time.Time) ([]*domain.Shift, error)
}

// RulesRepository интерфейс репозитория правил бронирования
type RulesRepository interface {
	GetByShopID(ctx context.Context, shopID int64) (*domain.BookingRules, error)
}

// ShopServiceClient интерфейс клиента для ShopService
type ShopServiceClient interface {
	GetShop(ctx context.Context, shopID int64) (*shopservice.Shop, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
