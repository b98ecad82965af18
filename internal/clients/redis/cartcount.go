package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

// CartCountCache caches the per-owner cart badge count. Every cart mutation
// invalidates the owner's entry, so a short TTL is just a backstop.
type CartCountCache interface {
	Get(ctx context.Context, ownerKey string) (int, bool, error)
	Set(ctx context.Context, ownerKey string, count int) error
	Invalidate(ctx context.Context, ownerKey string) error
}

type cartCountCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewCartCountCache shares the session store's client so the app holds one
// redis connection pool.
func NewCartCountCache(log *logger.Logger, store SessionStore) (CartCountCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	ss, ok := store.(*sessionStore)
	if !ok || ss == nil || ss.rdb == nil {
		return nil, fmt.Errorf("session store not initialized")
	}
	return &cartCountCache{
		log:    log.With("service", "RedisCartCountCache"),
		rdb:    ss.rdb,
		prefix: "cart_count:",
		ttl:    5 * time.Minute,
	}, nil
}

func (c *cartCountCache) Get(ctx context.Context, ownerKey string) (int, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+ownerKey).Result()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cart count get: %w", err)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (c *cartCountCache) Set(ctx context.Context, ownerKey string, count int) error {
	return c.rdb.Set(ctx, c.prefix+ownerKey, count, c.ttl).Err()
}

func (c *cartCountCache) Invalidate(ctx context.Context, ownerKey string) error {
	return c.rdb.Del(ctx, c.prefix+ownerKey).Err()
}
