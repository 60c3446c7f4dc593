// Package cache stores rendered artefacts, charts for now, by key.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	// Get reports false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisCache struct {
	client redis.Cmdable
	prefix string
}

// NewRedis keys every entry under prefix.
func NewRedis(client redis.Cmdable, prefix string) Cache {
	return &redisCache{client: client, prefix: prefix}
}

// OpenRedis returns nil when addr is empty.
func OpenRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis.Get: %w", err)
	}
	return data, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}
	return nil
}

type nopCache struct{}

// Nop never stores anything.
func Nop() Cache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (nopCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
