// Package slotcache кэширует списки доступных слотов в Redis.
// Кэш сквозной на чтение: промах не является ошибкой, а запись
// инвалидируется при любом изменении записей на дату.
package slotcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кэш доступных слотов поверх Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// New создает новый экземпляр кэша слотов
func New(client *redis.Client, ttl time.Duration, log Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Get возвращает закэшированный список слотов.
// Второй результат false означает промах; ошибки Redis трактуются как промах
func (c *Cache) Get(ctx context.Context, serviceID int64, date string, staffID int64) ([]types.TimeString, bool) {
	raw, err := c.client.Get(ctx, c.key(serviceID, date, staffID)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("slotcache: get failed: %v", err)
		return nil, false
	}

	var slots []types.TimeString
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		c.log.Warn("slotcache: corrupt entry, dropping: %v", err)
		_ = c.client.Del(ctx, c.key(serviceID, date, staffID)).Err()
		return nil, false
	}

	return slots, true
}

// Set сохраняет список слотов с TTL
func (c *Cache) Set(ctx context.Context, serviceID int64, date string, staffID int64, slots []types.TimeString) {
	raw, err := json.Marshal(slots)
	if err != nil {
		c.log.Warn("slotcache: marshal failed: %v", err)
		return
	}

	if err := c.client.Set(ctx, c.key(serviceID, date, staffID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("slotcache: set failed: %v", err)
	}
}

// InvalidateDate удаляет все закэшированные слоты на дату.
// Вызывается при создании, изменении и отмене записей
func (c *Cache) InvalidateDate(ctx context.Context, date string) {
	pattern := fmt.Sprintf("slots:*:%s:*", date)

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("slotcache: invalidate key %s failed: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("slotcache: invalidate scan failed: %v", err)
	}
}

func (c *Cache) key(serviceID int64, date string, staffID int64) string {
	// staffID = 0 означает объединение по всем сотрудникам
	return fmt.Sprintf("slots:%d:%s:%d", serviceID, date, staffID)
}
