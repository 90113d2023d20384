package identity

import (
	"context"

	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindBySubdomain finds a tenant by its unique subdomain
	FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)

	// FindByAdminID finds the tenant owned by the given club-admin user.
	// This is the named reverse lookup every admin-side tenant-scoped
	// operation resolves through.
	FindByAdminID(ctx context.Context, adminID uuid.UUID) (*Tenant, error)

	// FindAll finds all tenants matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)

	// FindByStatus finds tenants by status
	FindByStatus(ctx context.Context, status TenantStatus, filter shared.Filter) ([]Tenant, error)

	// FindByPlan finds tenants by subscription plan
	FindByPlan(ctx context.Context, plan TenantPlan, filter shared.Filter) ([]Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// Delete deletes a tenant
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts tenants matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts tenants with the given status
	CountByStatus(ctx context.Context, status TenantStatus) (int64, error)

	// CountByPlan counts tenants on the given plan
	CountByPlan(ctx context.Context, plan TenantPlan) (int64, error)

	// ExistsByClubName checks if a tenant with the given club name exists
	ExistsByClubName(ctx context.Context, clubName string) (bool, error)

	// ExistsBySubdomain checks if a tenant with the given subdomain exists
	ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error)
}
