package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"zintasa/backend/config"
)

// Client wraps the Redis connection. It backs the server-side session
// store and login rate limiting.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient opens a Redis connection and pings it.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Session records ──

const sessionPrefix = "session:"

// CreateSession records an active session under its token id.
func (c *Client) CreateSession(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, sessionPrefix+jti, userID, ttl).Err()
}

// SessionExists reports whether the session id is still active.
func (c *Client) SessionExists(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, sessionPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteSession revokes a session.
func (c *Client) DeleteSession(ctx context.Context, jti string) error {
	return c.rdb.Del(ctx, sessionPrefix+jti).Err()
}

// ── Rate limiting ──

// CheckRateLimit counts a hit on key within a fixed window and reports
// whether it is still under limit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
