package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TenantLocationCache caches each tenant's resolved timezone. Attendance day
// normalization needs the tenant's location on every request, so the lookup
// is cached instead of hitting the tenant table each time.
type TenantLocationCache interface {
	// Get returns the cached IANA timezone name for a tenant, if present
	Get(ctx context.Context, tenantID uuid.UUID) (string, bool, error)

	// Set stores a tenant's timezone name with a TTL
	Set(ctx context.Context, tenantID uuid.UUID, timezone string, ttl time.Duration) error

	// Invalidate removes a tenant's cached timezone (call after a timezone change)
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// InMemoryLocationCache provides an in-memory implementation for testing
// and single-instance deployments
// WARNING: entries are not shared across process instances
type InMemoryLocationCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]locationEntry
}

type locationEntry struct {
	timezone  string
	expiresAt time.Time
}

// NewInMemoryLocationCache creates a new in-memory tenant location cache
func NewInMemoryLocationCache() *InMemoryLocationCache {
	return &InMemoryLocationCache{
		entries: make(map[uuid.UUID]locationEntry),
	}
}

// Get returns the cached timezone for a tenant (and drops expired entries)
func (c *InMemoryLocationCache) Get(_ context.Context, tenantID uuid.UUID) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[tenantID]
	if !exists {
		return "", false, nil
	}

	if time.Now().After(entry.expiresAt) {
		delete(c.entries, tenantID)
		return "", false, nil
	}

	return entry.timezone, true, nil
}

// Set stores a tenant's timezone with a TTL
func (c *InMemoryLocationCache) Set(_ context.Context, tenantID uuid.UUID, timezone string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenantID] = locationEntry{
		timezone:  timezone,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Invalidate removes a tenant's cached timezone
func (c *InMemoryLocationCache) Invalidate(_ context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tenantID)
	return nil
}

// Ensure InMemoryLocationCache implements TenantLocationCache
var _ TenantLocationCache = (*InMemoryLocationCache)(nil)
