package tenants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const defaultCacheTTL = 30 * time.Second

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	TenantHostKey(host string) string
	TenantHandleKey(handle string) string
}

// RedisCache memoises successful resolutions.
type RedisCache struct {
	store cacheStore
	ttl   time.Duration
}

// NewRedisCache builds a resolution cache. A zero ttl uses the default.
func NewRedisCache(store cacheStore, ttl time.Duration) (*RedisCache, error) {
	if store == nil {
		return nil, fmt.Errorf("redis store required")
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{store: store, ttl: ttl}, nil
}

// Load returns a cached resolution, or nil on miss.
func (c *RedisCache) Load(ctx context.Context, lookup Lookup) (*Resolution, error) {
	raw, err := c.store.Get(ctx, c.key(lookup))
	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var res Resolution
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, fmt.Errorf("decode cached resolution: %w", err)
	}
	return &res, nil
}

// Save stores a resolution for the configured TTL.
func (c *RedisCache) Save(ctx context.Context, lookup Lookup, res *Resolution) error {
	buf, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.key(lookup), string(buf), c.ttl)
}

func (c *RedisCache) key(lookup Lookup) string {
	host := NormalizeHost(lookup.Host)
	if lookup.PathHandle == "" {
		return c.store.TenantHostKey(host)
	}
	handle, ok := NormalizeHandle(lookup.PathHandle)
	if !ok {
		handle = strings.ToLower(strings.TrimSpace(lookup.PathHandle))
	}
	return c.store.TenantHandleKey(handle + "@" + host)
}
