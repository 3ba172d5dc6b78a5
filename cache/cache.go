// Package cache stores rendered pages for anonymous visitors
package cache

import (
	"context"
	"time"

	"github.com/navbryce/yatube/config"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Store interface {
	// Get reports a miss with ok == false and a nil error
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// New builds the configured store. The none backend gives a nil store
func New(ctx context.Context, cfg *config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case config.CacheNone:
		return nil, nil
	case config.CacheMemory:
		return NewMemoryStore(), nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, errors.Wrap(err, "connecting to redis")
		}
		return NewRedisStore(client, "yatube:"), nil
	}
	return nil, errors.Errorf("unknown cache backend %q", cfg.Backend)
}
