package shoprules

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
)

// RulesRepository интерфейс репозитория правил бронирования
type RulesRepository interface {
	GetByShopID(ctx context.Context, shopID int64) (*domain.BookingRules, error)
	Upsert(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error)
}

// ShopServiceClient интерфейс клиента для ShopService
type ShopServiceClient interface {
	GetShop(ctx context.Context, shopID int64) (*shopservice.Shop, error)
}

// SnapshotInvalidator интерфейс для сброса кэшированного снапшота салона
// После изменения правил закэшированные данные салона могут устареть
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, shopID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
