package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	redisClient "voice-server/internal/clients/redis"
	"voice-server/internal/observability"
)

// AvailabilityCache holds recent successful external availability checks.
// Entries are time-boxed, not invalidated on booking; bookings always go
// through the live provider.
type AvailabilityCache interface {
	Get(ctx context.Context, key string) ([]Slot, bool)
	Set(ctx context.Context, key string, slots []Slot)
}

// CacheKey builds the cache key for one agent, event type and day.
func CacheKey(query AvailabilityQuery) string {
	return fmt.Sprintf("avail:%s:%s:%s", query.AgentID, query.EventTypeID, query.Date.Format("2006-01-02"))
}

// memoryCache is the in-process cache used when Redis is not configured.
// Each key is independent; a plain mutex-guarded map is sufficient.
type memoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	slots     []Slot
	expiresAt time.Time
}

// NewMemoryCache creates a process-local availability cache.
func NewMemoryCache(ttl time.Duration) AvailabilityCache {
	return &memoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryCacheEntry),
	}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]Slot, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.slots, true
}

func (c *memoryCache) Set(_ context.Context, key string, slots []Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryCacheEntry{slots: slots, expiresAt: time.Now().Add(c.ttl)}

	// Opportunistic sweep keeps the map bounded without a background timer.
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// redisCache shares availability results across processes. Failures degrade
// to a miss; the chain just asks the provider again.
type redisCache struct {
	client *redisClient.Client
	ttl    time.Duration
	logger *observability.Logger
}

// NewRedisCache creates a Redis-backed availability cache.
func NewRedisCache(client *redisClient.Client, ttl time.Duration, logger *observability.Logger) AvailabilityCache {
	return &redisCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]Slot, bool) {
	raw, err := c.client.GetBytes(ctx, key)
	if err != nil {
		return nil, false
	}
	var slots []Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.logger.Error(ctx, "failed to decode cached availability", err)
		return nil, false
	}
	return slots, true
}

func (c *redisCache) Set(ctx context.Context, key string, slots []Slot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		c.logger.Error(ctx, "failed to encode availability for cache", err)
		return
	}
	if err := c.client.SetBytes(ctx, key, raw, c.ttl); err != nil {
		c.logger.Error(ctx, "failed to write availability cache", err)
	}
}
