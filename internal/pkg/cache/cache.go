// Package cache wraps Redis for dashboard statistics caching and wizard run
// locks. Values are serialized to JSON.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache errors
var (
	ErrCacheMiss       = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection failed")
	ErrKeyEmpty        = errors.New("cache: key cannot be empty")
)

// Key prefixes for namespacing
const (
	PrefixDashboard = "dashboard:"
	PrefixLock      = "lock:"
)

// Default TTLs
const (
	TTLDashboard = 2 * time.Minute
	TTLWizardLock = 10 * time.Minute
)

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

// Addr returns the address in host:port form.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Cache is a thin JSON-serializing client over Redis.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &Cache{client: client}, nil
}

// Close closes the underlying connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Set stores a JSON-serialized value under key with a TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return ErrKeyEmpty
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: serialization failed: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Get retrieves and deserializes a value. Returns ErrCacheMiss when absent.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if key == "" {
		return ErrKeyEmpty
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete removes keys from the cache.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// AcquireLock takes a named lock with SetNX. Returns false when another
// holder already owns it.
func (c *Cache) AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if name == "" {
		return false, ErrKeyEmpty
	}
	return c.client.SetNX(ctx, PrefixLock+name, time.Now().Format(time.RFC3339), ttl).Result()
}

// ReleaseLock releases a named lock.
func (c *Cache) ReleaseLock(ctx context.Context, name string) error {
	return c.client.Del(ctx, PrefixLock+name).Err()
}

// DashboardKey builds the cache key for a dashboard section.
func DashboardKey(section string) string {
	return PrefixDashboard + section
}
