package shopsnapshot

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
)

// ShopServiceClient интерфейс источника снапшотов
type ShopServiceClient interface {
	GetShop(ctx context.Context, shopID int64) (*shopservice.Shop, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SnapshotCache интерфейс кеша снапшотов
type SnapshotCache interface {
	Get(ctx context.Context, shopID int64) (*shopservice.Shop, error)
	Set(ctx context.Context, shop *shopservice.Shop) error
	Invalidate(ctx context.Context, shopID int64) error
}

// CachedClient клиент ShopService с кешированием снапшотов
// Снапшот загружается один раз на запрос и переживает TTL кеша;
// ошибки кеша деградируют до прямого похода в ShopService
type CachedClient struct {
	client ShopServiceClient
	cache  SnapshotCache
	log    Logger
}

// NewCachedClient создает кеширующий клиент ShopService
func NewCachedClient(client ShopServiceClient, cache SnapshotCache, log Logger) *CachedClient {
	return &CachedClient{client: client, cache: cache, log: log}
}

// GetShop возвращает снапшот салона из кеша или из ShopService
func (c *CachedClient) GetShop(ctx context.Context, shopID int64) (*shopservice.Shop, error) {
	shop, err := c.cache.Get(ctx, shopID)
	if err == nil {
		return shop, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.log.Warn("shopsnapshot: cache read failed for shop=%d: %v", shopID, err)
	}

	shop, err = c.client.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, shop); err != nil {
		c.log.Warn("shopsnapshot: cache write failed for shop=%d: %v", shopID, err)
	}

	return shop, nil
}

// Invalidate сбрасывает снапшот салона
func (c *CachedClient) Invalidate(ctx context.Context, shopID int64) error {
	return c.cache.Invalidate(ctx, shopID)
}
