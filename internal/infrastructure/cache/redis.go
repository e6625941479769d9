package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/hash23code/foxwise-todo-sub001/internal/domain/events"
	"github.com/hash23code/foxwise-todo-sub001/pkg/config"
)

// Custom error types
var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrInvalidConfig   = errors.New("cache: invalid configuration")
	ErrCacheConnection = errors.New("cache: connection error")
)

// Config holds the configuration for Redis client
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	OperationTimeout time.Duration
	DefaultTTL       time.Duration
	KeyPrefix        string
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	timeout := cfg.Server.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	return &Config{
		Addr:             fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:         cfg.Redis.Password,
		DB:               cfg.Redis.DB,
		PoolSize:         100,
		MinIdleConns:     10,
		OperationTimeout: timeout,
		DefaultTTL:       5 * time.Minute,
		KeyPrefix:        "foxwise:",
	}
}

// RedisClient wraps the redis connection with JSON helpers and the badge
// event bus
type RedisClient struct {
	client *redis.Client
	config *Config
}

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, ErrInvalidConfig
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OperationTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &RedisClient{client: client, config: cfg}, nil
}

func (r *RedisClient) key(k string) string {
	return r.config.KeyPrefix + k
}

// GetJSON reads a cached value into dest. Returns ErrCacheNotFound on miss.
func (r *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON stores a value under key with the default TTL
func (r *RedisClient) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, r.config.DefaultTTL).Err()
}

// DeletePattern removes all keys matching the given pattern (prefix applied)
func (r *RedisClient) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, r.key(pattern), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// PublishBadgeEvent pushes a badge event onto the user's channel
func (r *RedisClient) PublishBadgeEvent(ctx context.Context, event *events.BadgeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal badge event: %w", err)
	}
	return r.client.Publish(ctx, event.Channel(), payload).Err()
}

// HealthCheck verifies the connection is alive
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.config.OperationTimeout)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

// GetClient exposes the underlying client for subsystems that need it
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Close shuts down the connection pool
func (r *RedisClient) Close() error {
	return r.client.Close()
}
