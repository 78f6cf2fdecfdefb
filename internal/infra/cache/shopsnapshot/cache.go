package shopsnapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
)

// ErrCacheMiss возвращается, когда снапшота нет в кеше
var ErrCacheMiss = errors.New("shopsnapshot: cache miss")

// Cache redis-кеш снапшотов салонов с TTL и явной инвалидацией
// Инвалидация вызывается при изменении настроек салона, чтобы
// расчёт слотов не работал по устаревшим часам работы и меню
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает новый кеш снапшотов
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(shopID int64) string {
	return fmt.Sprintf("shop:snapshot:%d", shopID)
}

// Get возвращает снапшот салона из кеша
func (c *Cache) Get(ctx context.Context, shopID int64) (*shopservice.Shop, error) {
	data, err := c.client.Get(ctx, key(shopID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("shopsnapshot: get: %w", err)
	}

	var shop shopservice.Shop
	if err := json.Unmarshal(data, &shop); err != nil {
		// Битый снапшот равнозначен промаху, источник перезапишет его
		return nil, ErrCacheMiss
	}
	return &shop, nil
}

// Set сохраняет снапшот салона в кеш с TTL
func (c *Cache) Set(ctx context.Context, shop *shopservice.Shop) error {
	data, err := json.Marshal(shop)
	if err != nil {
		return fmt.Errorf("shopsnapshot: marshal: %w", err)
	}
	if err := c.client.Set(ctx, key(shop.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("shopsnapshot: set: %w", err)
	}
	return nil
}

// Invalidate удаляет снапшот салона из кеша
func (c *Cache) Invalidate(ctx context.Context, shopID int64) error {
	if err := c.client.Del(ctx, key(shopID)).Err(); err != nil {
		return fmt.Errorf("shopsnapshot: invalidate: %w", err)
	}
	return nil
}
