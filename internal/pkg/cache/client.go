package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is the cache contract used by the product repository and the rate
// limiter.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	GetInt(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss is returned when the key does not exist.
var ErrCacheMiss = redis.Nil

// RedisClient implements Client with Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient connects to Redis and fails when the server does not answer a PING.
func NewRedisClient(ctx context.Context, addr, password string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return &RedisClient{rdb: rdb}, nil
}

func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *RedisClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.rdb.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, ErrCacheMiss
	}
	return val, err
}

func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

func (c *RedisClient) Close() error {
	return c.rdb.Close()
}

// NopClient is used when no Redis address is configured: every read misses
// and every write is dropped.
type NopClient struct{}

func (NopClient) Get(context.Context, string) (string, error) { return "", ErrCacheMiss }
func (NopClient) GetInt(context.Context, string) (int, error)  { return 0, ErrCacheMiss }
func (NopClient) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (NopClient) Incr(context.Context, string) (int64, error) { return 0, nil }
func (NopClient) Delete(context.Context, string) error        { return nil }
