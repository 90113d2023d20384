package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLocationCache implements TenantLocationCache using Redis
// This is suitable for distributed deployments where multiple instances
// should share the tenant timezone lookups
type RedisLocationCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisLocationCache creates a new Redis-based tenant location cache
func NewRedisLocationCache(cfg RedisConfig) (*RedisLocationCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLocationCache{
		client:    client,
		keyPrefix: "tenant:timezone:",
	}, nil
}

// NewRedisLocationCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisLocationCacheWithClient(client *redis.Client, keyPrefix string) *RedisLocationCache {
	if keyPrefix == "" {
		keyPrefix = "tenant:timezone:"
	}
	return &RedisLocationCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (c *RedisLocationCache) key(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String()
}

// Get returns the cached timezone name for a tenant
func (c *RedisLocationCache) Get(ctx context.Context, tenantID uuid.UUID) (string, bool, error) {
	timezone, err := c.client.Get(ctx, c.key(tenantID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read tenant timezone from cache: %w", err)
	}
	return timezone, true, nil
}

// Set stores a tenant's timezone name with a TTL
func (c *RedisLocationCache) Set(ctx context.Context, tenantID uuid.UUID, timezone string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(tenantID), timezone, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache tenant timezone: %w", err)
	}
	return nil
}

// Invalidate removes a tenant's cached timezone
func (c *RedisLocationCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate tenant timezone cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisLocationCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisLocationCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisLocationCache implements TenantLocationCache
var _ TenantLocationCache = (*RedisLocationCache)(nil)
