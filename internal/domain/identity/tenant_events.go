package identity

import (
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeTenant = "Tenant"

// Event type constants
const (
	EventTypeTenantCreated       = "TenantCreated"
	EventTypeTenantUpdated       = "TenantUpdated"
	EventTypeTenantStatusChanged = "TenantStatusChanged"
	EventTypeTenantPlanChanged   = "TenantPlanChanged"
	EventTypeTenantAdminAssigned = "TenantAdminAssigned"
)

// TenantCreatedEvent is published when a new tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	ClubName  string       `json:"club_name"`
	Subdomain string       `json:"subdomain"`
	Status    TenantStatus `json:"status"`
	Plan      TenantPlan   `json:"plan"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(tenant *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, tenant.ID, tenant.ID),
		ClubName:        tenant.ClubName,
		Subdomain:       tenant.Subdomain,
		Status:          tenant.Status,
		Plan:            tenant.Plan,
	}
}

// TenantUpdatedEvent is published when a tenant is updated
type TenantUpdatedEvent struct {
	shared.BaseDomainEvent
	ClubName  string `json:"club_name"`
	Subdomain string `json:"subdomain"`
}

// NewTenantUpdatedEvent creates a new TenantUpdatedEvent
func NewTenantUpdatedEvent(tenant *Tenant) *TenantUpdatedEvent {
	return &TenantUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantUpdated, AggregateTypeTenant, tenant.ID, tenant.ID),
		ClubName:        tenant.ClubName,
		Subdomain:       tenant.Subdomain,
	}
}

// TenantStatusChangedEvent is published when a tenant's status changes
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	Subdomain string       `json:"subdomain"`
	OldStatus TenantStatus `json:"old_status"`
	NewStatus TenantStatus `json:"new_status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(tenant *Tenant, oldStatus, newStatus TenantStatus) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, AggregateTypeTenant, tenant.ID, tenant.ID),
		Subdomain:       tenant.Subdomain,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// TenantPlanChangedEvent is published when a tenant's subscription plan changes
type TenantPlanChangedEvent struct {
	shared.BaseDomainEvent
	Subdomain string     `json:"subdomain"`
	OldPlan   TenantPlan `json:"old_plan"`
	NewPlan   TenantPlan `json:"new_plan"`
}

// NewTenantPlanChangedEvent creates a new TenantPlanChangedEvent
func NewTenantPlanChangedEvent(tenant *Tenant, oldPlan, newPlan TenantPlan) *TenantPlanChangedEvent {
	return &TenantPlanChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantPlanChanged, AggregateTypeTenant, tenant.ID, tenant.ID),
		Subdomain:       tenant.Subdomain,
		OldPlan:         oldPlan,
		NewPlan:         newPlan,
	}
}

// TenantAdminAssignedEvent is published when the owning club admin is linked
type TenantAdminAssignedEvent struct {
	shared.BaseDomainEvent
	Subdomain string    `json:"subdomain"`
	AdminID   uuid.UUID `json:"admin_id"`
}

// NewTenantAdminAssignedEvent creates a new TenantAdminAssignedEvent
func NewTenantAdminAssignedEvent(tenant *Tenant, adminID uuid.UUID) *TenantAdminAssignedEvent {
	return &TenantAdminAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantAdminAssigned, AggregateTypeTenant, tenant.ID, tenant.ID),
		Subdomain:       tenant.Subdomain,
		AdminID:         adminID,
	}
}
