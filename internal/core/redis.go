// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/cms-blog/internal/config"
)

const redisPingTimeout = 3 * time.Second

// ErrRedisUnavailable is returned alongside a usable client when the first
// ping fails. Rate limits and the settings cache fall back to local state,
// so callers may keep going.
var ErrRedisUnavailable = errors.New("redis unavailable")

type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 10 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	r := &Redis{Client: redis.NewClient(opts)}
	if err := r.Ping(ctx); err != nil {
		return r, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return r, nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	return r.Client.Ping(ctx).Err()
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}
