package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardPrefix = "inflight:"

// Connect opens a Redis client and checks it with PING.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// Guard marks a key as being processed for at most ttl.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuard(client *redis.Client, ttl time.Duration) *Guard {
	return &Guard{client: client, ttl: ttl}
}

// Acquire returns false when another holder already owns key.
func (g *Guard) Acquire(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, guardPrefix+key, time.Now().UTC().Format(time.RFC3339Nano), g.ttl).Result()
}

func (g *Guard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, guardPrefix+key).Err()
}
