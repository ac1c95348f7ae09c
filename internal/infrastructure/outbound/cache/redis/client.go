package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"noders-content-service/internal/custom_errors"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

// Client stores JSON-encoded values under string keys.
type Client struct {
	rdb *redis.Client
	log ports.Logger
}

func NewClient(cfg config.Redis, log ports.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", slog.String("error", err.Error()))
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis",
		slog.String("address", cfg.Address),
		slog.Int("port", cfg.Port),
		slog.Int("db", cfg.DB))

	return NewClientFromRedis(rdb, log), nil
}

func NewClientFromRedis(rdb *redis.Client, log ports.Logger) *Client {
	return &Client{rdb: rdb, log: log}
}

func (c *Client) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.log.Debug("Cache miss", slog.String("key", key))
			return custom_errors.ErrCacheMiss
		}
		c.log.Error("Failed to read cache key", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Error("Failed to decode cached value", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}

func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		c.log.Error("Failed to write cache key", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("failed to set cache: %w", err)
	}

	c.log.Debug("Cached value", slog.String("key", key), slog.Duration("ttl", ttl))
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.log.Error("Failed to delete cache key", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete from cache: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
