package identity

import (
	"strings"
	"time"

	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "ACTIVE"
	TenantStatusInactive  TenantStatus = "INACTIVE"
	TenantStatusSuspended TenantStatus = "SUSPENDED" // Suspended due to payment/violation issues
)

// TenantPlan represents the subscription plan of a tenant
type TenantPlan string

const (
	TenantPlanFree       TenantPlan = "FREE"
	TenantPlanBasic      TenantPlan = "BASIC"
	TenantPlanPro        TenantPlan = "PRO"
	TenantPlanEnterprise TenantPlan = "ENTERPRISE"
)

// Tenant represents one club in the multi-tenant system.
// It is the aggregate root for tenant-related operations and the
// authorization root for all roster and attendance data.
type Tenant struct {
	shared.BaseAggregateRoot
	ClubName  string
	Subdomain string
	Plan      TenantPlan
	Status    TenantStatus
	// AdminID references the club-admin user that owns this tenant.
	// Set once when the club-admin account is created, never reassigned
	// in normal flow. All admin-side tenant resolution goes through it.
	AdminID  *uuid.UUID
	Timezone string
	Metadata string // free-form JSON object
}

// NewTenant creates a new tenant with required fields
func NewTenant(clubName, subdomain, timezone string) (*Tenant, error) {
	if err := validateClubName(clubName); err != nil {
		return nil, err
	}
	if err := validateSubdomain(subdomain); err != nil {
		return nil, err
	}
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, shared.NewDomainError("INVALID_TIMEZONE", "Timezone must be a valid IANA name")
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClubName:          clubName,
		Subdomain:         strings.ToLower(strings.TrimSpace(subdomain)),
		Plan:              TenantPlanFree,
		Status:            TenantStatusActive,
		Timezone:          timezone,
		Metadata:          "{}",
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// Update updates the tenant's club name
func (t *Tenant) Update(clubName string) error {
	if err := validateClubName(clubName); err != nil {
		return err
	}

	t.ClubName = clubName
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// SetSubdomain changes the tenant's subdomain
func (t *Tenant) SetSubdomain(subdomain string) error {
	if err := validateSubdomain(subdomain); err != nil {
		return err
	}

	t.Subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetPlan sets the tenant's subscription plan
func (t *Tenant) SetPlan(plan TenantPlan) error {
	if err := validateTenantPlan(plan); err != nil {
		return err
	}

	oldPlan := t.Plan
	t.Plan = plan
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantPlanChangedEvent(t, oldPlan, plan))

	return nil
}

// SetTimezone changes the timezone used for attendance day boundaries.
func (t *Tenant) SetTimezone(timezone string) error {
	if _, err := time.LoadLocation(timezone); err != nil {
		return shared.NewDomainError("INVALID_TIMEZONE", "Timezone must be a valid IANA name")
	}

	t.Timezone = timezone
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetMetadata replaces the tenant's free-form metadata JSON
func (t *Tenant) SetMetadata(metadata string) error {
	if metadata == "" {
		metadata = "{}"
	}
	if len(metadata) > 8192 {
		return shared.NewDomainError("INVALID_METADATA", "Metadata cannot exceed 8192 characters")
	}

	t.Metadata = metadata
	t.Touch()
	t.IncrementVersion()

	return nil
}

// AssignAdmin links the owning club-admin user to the tenant.
// The link is write-once.
func (t *Tenant) AssignAdmin(adminID uuid.UUID) error {
	if adminID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADMIN_ID", "Admin ID cannot be empty")
	}
	if t.AdminID != nil {
		return shared.NewDomainError("ADMIN_ALREADY_ASSIGNED", "Tenant already has a club admin assigned")
	}

	t.AdminID = &adminID
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantAdminAssignedEvent(t, adminID))

	return nil
}

// HasAdmin returns true if a club admin has been assigned
func (t *Tenant) HasAdmin() bool {
	return t.AdminID != nil
}

// Activate activates the tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}

	oldStatus := t.Status
	t.Status = TenantStatusActive
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusActive))

	return nil
}

// Deactivate deactivates the tenant
func (t *Tenant) Deactivate() error {
	if t.Status == TenantStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Tenant is already inactive")
	}

	oldStatus := t.Status
	t.Status = TenantStatusInactive
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusInactive))

	return nil
}

// Suspend suspends the tenant (e.g., due to payment issues)
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}

	oldStatus := t.Status
	t.Status = TenantStatusSuspended
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusSuspended))

	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// IsSuspended returns true if the tenant is suspended
func (t *Tenant) IsSuspended() bool {
	return t.Status == TenantStatusSuspended
}

// Location returns the tenant's timezone location. Falls back to UTC
// if the stored name no longer resolves.
func (t *Tenant) Location() *time.Location {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validation functions

func validateClubName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Club name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Club name cannot exceed 200 characters")
	}
	return nil
}

func validateSubdomain(subdomain string) error {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" {
		return shared.NewDomainError("INVALID_SUBDOMAIN", "Subdomain cannot be empty")
	}
	if len(subdomain) > 100 {
		return shared.NewDomainError("INVALID_SUBDOMAIN", "Subdomain cannot exceed 100 characters")
	}
	for _, r := range subdomain {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SUBDOMAIN", "Subdomain can only contain lowercase letters, numbers, and hyphens")
		}
	}
	if strings.HasPrefix(subdomain, "-") || strings.HasSuffix(subdomain, "-") {
		return shared.NewDomainError("INVALID_SUBDOMAIN", "Subdomain cannot start or end with a hyphen")
	}
	return nil
}

func validateTenantPlan(plan TenantPlan) error {
	switch plan {
	case TenantPlanFree, TenantPlanBasic, TenantPlanPro, TenantPlanEnterprise:
		return nil
	default:
		return shared.NewDomainError("INVALID_PLAN", "Invalid tenant plan")
	}
}
