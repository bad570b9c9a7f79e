// Package store provides the persistent key-value layer and the per-user
// session collections built on top of it.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Driver selects a KV implementation.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverSQLite Driver = "sqlite"
	DriverRedis  Driver = "redis"
)

var (
	ErrInvalidDriver = errors.New("store: unknown driver")
	ErrInvalidConfig = errors.New("store: missing driver configuration")
)

// KV is the minimal persistent key-value contract the session layer needs.
// Get reports absence through the bool, not an error.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Option configures NewKV.
type Option func(*kvConfig)

type kvConfig struct {
	sqliteDSN   string
	redisClient *redis.Client
	redisTTL    time.Duration
}

// WithSQLiteDSN sets the database path or DSN for the sqlite driver.
func WithSQLiteDSN(dsn string) Option {
	return func(c *kvConfig) { c.sqliteDSN = dsn }
}

// WithRedisClient sets the client for the redis driver.
func WithRedisClient(client *redis.Client) Option {
	return func(c *kvConfig) { c.redisClient = client }
}

// WithRedisTTL sets an expiry on redis keys. Zero (the default) keeps
// sessions forever, matching the local-storage semantics of the browser
// client.
func WithRedisTTL(ttl time.Duration) Option {
	return func(c *kvConfig) { c.redisTTL = ttl }
}

// NewKV creates a key-value store for the given driver.
func NewKV(driver Driver, opts ...Option) (KV, error) {
	cfg := &kvConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch driver {
	case DriverMemory:
		return newMemoryKV(), nil
	case DriverSQLite:
		if cfg.sqliteDSN == "" {
			return nil, ErrInvalidConfig
		}
		return newSQLiteKV(cfg.sqliteDSN)
	case DriverRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return &redisKV{client: cfg.redisClient, ttl: cfg.redisTTL}, nil
	default:
		return nil, ErrInvalidDriver
	}
}
