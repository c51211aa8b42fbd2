package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache memoizes computed free-slot listings per provider/date.
// Entries embed a per-provider version counter, so invalidation is a single
// INCR instead of a key scan: bumping the version orphans every old entry
// and the TTL reaps them.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *AvailabilityCache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *AvailabilityCache) versionKey(providerID uint) string {
	return fmt.Sprintf("availability:ver:%d", providerID)
}

func (c *AvailabilityCache) slotKey(providerID uint, date string, durationMin int, ver int64) string {
	return fmt.Sprintf("availability:slots:%d:%s:%d:v%d", providerID, date, durationMin, ver)
}

func (c *AvailabilityCache) version(ctx context.Context, providerID uint) int64 {
	ver, err := c.client.Get(ctx, c.versionKey(providerID)).Int64()
	if err != nil {
		return 0
	}
	return ver
}

// Get unmarshals a cached slot listing into out; ok is false on miss.
func (c *AvailabilityCache) Get(
	ctx context.Context,
	providerID uint,
	date string,
	durationMin int,
	out any,
) bool {
	if !c.enabled() {
		return false
	}

	key := c.slotKey(providerID, date, durationMin, c.version(ctx, providerID))
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, out) == nil
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	providerID uint,
	date string,
	durationMin int,
	value any,
) {
	if !c.enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	key := c.slotKey(providerID, date, durationMin, c.version(ctx, providerID))
	c.client.Set(ctx, key, raw, c.ttl)
}

// Invalidate drops every cached listing for the provider.
func (c *AvailabilityCache) Invalidate(ctx context.Context, providerID uint) {
	if !c.enabled() {
		return
	}
	c.client.Incr(ctx, c.versionKey(providerID))
}
