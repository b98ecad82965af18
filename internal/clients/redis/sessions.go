package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

// SessionStore issues and validates anonymous cart session keys. Keys are
// opaque UUIDs with a sliding TTL; validation refreshes the TTL so an active
// visitor's cart does not expire under them.
type SessionStore interface {
	Issue(ctx context.Context) (string, error)
	Valid(ctx context.Context, sessionKey string) (bool, error)
	Close() error
}

type sessionStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewSessionStore(log *logger.Logger, ttl time.Duration) (SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}

	return &sessionStore{
		log:    log.With("service", "RedisSessionStore"),
		rdb:    rdb,
		prefix: "cart_session:",
		ttl:    ttl,
	}, nil
}

func (s *sessionStore) Issue(ctx context.Context) (string, error) {
	if s == nil || s.rdb == nil {
		return "", fmt.Errorf("session store not initialized")
	}
	key := uuid.New().String()
	if err := s.rdb.Set(ctx, s.prefix+key, 1, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return key, nil
}

func (s *sessionStore) Valid(ctx context.Context, sessionKey string) (bool, error) {
	if s == nil || s.rdb == nil {
		return false, fmt.Errorf("session store not initialized")
	}
	if strings.TrimSpace(sessionKey) == "" {
		return false, nil
	}
	ok, err := s.rdb.Expire(ctx, s.prefix+sessionKey, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("validate session: %w", err)
	}
	return ok, nil
}

func (s *sessionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
