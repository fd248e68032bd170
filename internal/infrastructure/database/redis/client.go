// Package redis provides the snapshot cache: the scored listing set is
// persisted after each pipeline run so a restarted process can serve
// rankings before its first run completes.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marty-droid/laundromat-app-v3/internal/config"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// Client wraps the go-redis client with config-driven construction and a
// probe-friendly health check.
type Client struct {
	rdb    *redis.Client
	logger logging.Logger
}

// NewClient connects to the configured redis instance and verifies it with a
// ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger logging.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError,
			"redis connection failed").WithDetail(cfg.Addr)
	}

	logger.Info("connected to snapshot cache", logging.String("addr", cfg.Addr))
	return &Client{rdb: rdb, logger: logger}, nil
}

// HealthCheck pings the cache with a short deadline.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "snapshot cache unreachable")
	}
	return nil
}

// Close releases the client.
func (c *Client) Close() error {
	return c.rdb.Close()
}
