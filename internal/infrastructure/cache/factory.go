package cache

import (
	"fmt"

	"github.com/clubops/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LocationCacheFactory creates tenant location caches based on configuration
type LocationCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// LocationCacheFactoryOption is a functional option for configuring the factory
type LocationCacheFactoryOption func(*LocationCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LocationCacheFactoryOption {
	return func(f *LocationCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory cache when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) LocationCacheFactoryOption {
	return func(f *LocationCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewLocationCacheFactory creates a new factory
func NewLocationCacheFactory(cfg config.RedisConfig, opts ...LocationCacheFactoryOption) *LocationCacheFactory {
	f := &LocationCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true, // Default to allowing fallback
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based tenant location cache
func (f *LocationCacheFactory) CreateRedisCache() (TenantLocationCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisLocationCache(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis tenant location cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory tenant location cache
// This is suitable for single-instance deployments and testing
func (f *LocationCacheFactory) CreateInMemoryCache() TenantLocationCache {
	return NewInMemoryLocationCache()
}

// CreateCache creates a tenant location cache based on whether Redis is available
// It tries Redis first, and falls back to in-memory if Redis is not available
// and AllowInMemoryFallback is true
func (f *LocationCacheFactory) CreateCache() (TenantLocationCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis tenant location cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for tenant location cache but unavailable: %w", err)
	}

	// A stale in-memory entry only shifts day boundaries until the TTL
	// passes, so falling back is acceptable
	f.logger.Warn("Redis unavailable, falling back to in-memory tenant location cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
