package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config carries the Redis connection settings. All token and guard state
// kept here is ephemeral, so DB 0 with no password is the common setup.
type Config struct {
	Addr string
	DB   int
}

// Connect opens a Redis client and fails fast if the server is unreachable,
// so a misconfigured address surfaces at startup instead of on the first
// guarded mutation.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: pingTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
