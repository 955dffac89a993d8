package odds

import (
	"context"
	"strconv"
	"time"

	"github.com/wagerworks/wagerbook-backend/pkg/redis"
)

const defaultTTL = 30 * time.Second

// Store is the key/value surface the cache needs; pkg/redis.Client
// satisfies it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Cache keeps computed odds in redis keyed per event and option. A nil
// Cache is a valid always-miss cache.
type Cache struct {
	store Store
	ttl   time.Duration
}

// NewCache wraps a redis store. A zero ttl falls back to the default.
func NewCache(store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{store: store, ttl: ttl}
}

// Get returns the cached odds value and whether the lookup hit.
func (c *Cache) Get(ctx context.Context, eventID int64, optionIdx int) (int64, bool) {
	if c == nil || c.store == nil {
		return 0, false
	}
	raw, err := c.store.Get(ctx, redis.OddsKey(eventID, optionIdx))
	if err != nil {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Put stores a computed odds value.
func (c *Cache) Put(ctx context.Context, eventID int64, optionIdx int, value int64) error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Set(ctx, redis.OddsKey(eventID, optionIdx), strconv.FormatInt(value, 10), c.ttl)
}

// InvalidateEvent drops every cached option of the event. Pool changes move
// the odds of all options at once, so everything goes.
func (c *Cache) InvalidateEvent(ctx context.Context, eventID int64, optionCount int) error {
	if c == nil || c.store == nil || optionCount <= 0 {
		return nil
	}
	keys := make([]string, 0, optionCount)
	for idx := 0; idx < optionCount; idx++ {
		keys = append(keys, redis.OddsKey(eventID, idx))
	}
	return c.store.Del(ctx, keys...)
}
