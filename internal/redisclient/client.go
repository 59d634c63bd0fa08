package redisclient

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a Redis-backed cache.Store. Redis failures degrade to cache
// misses so the store of record keeps serving.
type Client struct {
	redisdb *redis.Client
	ttl     time.Duration
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func New(cfg Config) *Client {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Client{redisdb: redisdb, ttl: ttl}
}

// this ping function checks redis connectivity
func (c *Client) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.redisdb.Close()
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.redisdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Default().WarnContext(ctx, "redis get failed", "key", key, "err", err)
		}
		return nil, false
	}

	return val, true
}

func (c *Client) Set(ctx context.Context, key string, val []byte) {
	err := c.redisdb.Set(ctx, key, val, c.ttl).Err()
	if err != nil {
		slog.Default().WarnContext(ctx, "redis set failed", "key", key, "err", err)
	}
}

func (c *Client) Delete(ctx context.Context, key string) {
	err := c.redisdb.Del(ctx, key).Err()
	if err != nil {
		slog.Default().WarnContext(ctx, "redis delete failed", "key", key, "err", err)
	}
}
