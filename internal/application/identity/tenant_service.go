package identity

import (
	"context"
	"time"

	"github.com/clubops/backend/internal/domain/identity"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantService handles tenant management operations (super-admin surface)
type TenantService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	logger     *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// CreateTenantInput contains input for creating a tenant
type CreateTenantInput struct {
	ClubName  string
	Subdomain string
	Timezone  string
	Plan      string
	Metadata  string
}

// UpdateTenantInput contains input for updating a tenant
type UpdateTenantInput struct {
	ID        uuid.UUID
	ClubName  *string
	Subdomain *string
	Timezone  *string
	Metadata  *string
}

// CreateClubAdminInput contains input for creating a tenant's club admin
type CreateClubAdminInput struct {
	TenantID uuid.UUID
	Username string
	Password string
	FullName string
	Email    string
}

// TenantDTO represents tenant data transfer object
type TenantDTO struct {
	ID        uuid.UUID  `json:"id"`
	ClubName  string     `json:"club_name"`
	Subdomain string     `json:"subdomain"`
	Status    string     `json:"status"`
	Plan      string     `json:"plan"`
	AdminID   *uuid.UUID `json:"admin_id,omitempty"`
	Timezone  string     `json:"timezone"`
	Metadata  string     `json:"metadata,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TenantFilter represents filter for querying tenants
type TenantFilter struct {
	Page     int
	PageSize int
	SortBy   string
	SortDir  string
	Keyword  string
	Status   string
	Plan     string
}

// ToSharedFilter converts TenantFilter to shared.Filter
func (f TenantFilter) ToSharedFilter() shared.Filter {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  f.SortBy,
		OrderDir: f.SortDir,
		Search:   f.Keyword,
	}
}

// TenantListResult represents paginated tenant list result
type TenantListResult struct {
	Tenants    []TenantDTO `json:"tenants"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// Create creates a new tenant
func (s *TenantService) Create(ctx context.Context, input CreateTenantInput) (*TenantDTO, error) {
	s.logger.Info("Creating new tenant",
		zap.String("club_name", input.ClubName),
		zap.String("subdomain", input.Subdomain))

	// Check club name uniqueness
	exists, err := s.tenantRepo.ExistsByClubName(ctx, input.ClubName)
	if err != nil {
		s.logger.Error("Failed to check club name existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check club name availability")
	}
	if exists {
		return nil, shared.NewDomainError("CLUB_NAME_EXISTS", "A club with this name already exists")
	}

	// Check subdomain uniqueness
	exists, err = s.tenantRepo.ExistsBySubdomain(ctx, input.Subdomain)
	if err != nil {
		s.logger.Error("Failed to check subdomain existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check subdomain availability")
	}
	if exists {
		return nil, shared.NewDomainError("SUBDOMAIN_EXISTS", "Subdomain already exists")
	}

	tenant, err := identity.NewTenant(input.ClubName, input.Subdomain, input.Timezone)
	if err != nil {
		return nil, err
	}

	if input.Plan != "" {
		if err := tenant.SetPlan(identity.TenantPlan(input.Plan)); err != nil {
			return nil, err
		}
	}
	if input.Metadata != "" {
		if err := tenant.SetMetadata(input.Metadata); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to create tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tenant")
	}

	s.logger.Info("Tenant created successfully",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("subdomain", tenant.Subdomain))

	return toTenantDTO(tenant), nil
}

// CreateClubAdmin creates the owning club-admin account for a tenant and
// links it via the write-once admin reference
func (s *TenantService) CreateClubAdmin(ctx context.Context, input CreateClubAdminInput) (*UserDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, input.TenantID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		s.logger.Error("Failed to find tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find tenant")
	}

	if tenant.HasAdmin() {
		return nil, shared.NewDomainError("ADMIN_ALREADY_ASSIGNED", "Tenant already has a club admin assigned")
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
	}

	admin, err := identity.NewClubAdmin(tenant.ID, input.Username, input.Password, input.FullName)
	if err != nil {
		return nil, err
	}
	if input.Email != "" {
		if err := admin.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}

	if err := tenant.AssignAdmin(admin.ID); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		s.logger.Error("Failed to create club admin", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create club admin")
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to link club admin to tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to link club admin to tenant")
	}

	s.logger.Info("Club admin created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("user_id", admin.ID.String()))

	return toUserDTO(admin), nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		s.logger.Error("Failed to find tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find tenant")
	}
	return toTenantDTO(tenant), nil
}

// GetBySubdomain retrieves a tenant by its subdomain
func (s *TenantService) GetBySubdomain(ctx context.Context, subdomain string) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindBySubdomain(ctx, subdomain)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		s.logger.Error("Failed to find tenant by subdomain", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find tenant")
	}
	return toTenantDTO(tenant), nil
}

// GetByAdminID retrieves the tenant owned by a club-admin user
func (s *TenantService) GetByAdminID(ctx context.Context, adminID uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByAdminID(ctx, adminID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "No tenant is linked to this admin")
		}
		s.logger.Error("Failed to find tenant by admin", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find tenant")
	}
	return toTenantDTO(tenant), nil
}

// List retrieves a paginated list of tenants
func (s *TenantService) List(ctx context.Context, filter TenantFilter) (*TenantListResult, error) {
	sharedFilter := filter.ToSharedFilter()

	var tenants []identity.Tenant
	var total int64
	var err error

	if filter.Status != "" {
		status := identity.TenantStatus(filter.Status)
		tenants, err = s.tenantRepo.FindByStatus(ctx, status, sharedFilter)
		if err != nil {
			s.logger.Error("Failed to list tenants by status", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tenants")
		}
		total, err = s.tenantRepo.CountByStatus(ctx, status)
	} else if filter.Plan != "" {
		plan := identity.TenantPlan(filter.Plan)
		tenants, err = s.tenantRepo.FindByPlan(ctx, plan, sharedFilter)
		if err != nil {
			s.logger.Error("Failed to list tenants by plan", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tenants")
		}
		total, err = s.tenantRepo.CountByPlan(ctx, plan)
	} else {
		tenants, err = s.tenantRepo.FindAll(ctx, sharedFilter)
		if err != nil {
			s.logger.Error("Failed to list tenants", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tenants")
		}
		total, err = s.tenantRepo.Count(ctx, sharedFilter)
	}

	if err != nil {
		s.logger.Error("Failed to count tenants", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count tenants")
	}

	// Calculate total pages
	pageSize := sharedFilter.PageSize
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	tenantDTOs := make([]TenantDTO, len(tenants))
	for i, tenant := range tenants {
		tenantDTOs[i] = *toTenantDTO(&tenant)
	}

	return &TenantListResult{
		Tenants:    tenantDTOs,
		Total:      total,
		Page:       sharedFilter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update updates a tenant's information
func (s *TenantService) Update(ctx context.Context, input UpdateTenantInput) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, input.ID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find tenant")
	}

	if input.ClubName != nil && *input.ClubName != tenant.ClubName {
		exists, err := s.tenantRepo.ExistsByClubName(ctx, *input.ClubName)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check club name availability")
		}
		if exists {
			return nil, shared.NewDomainError("CLUB_NAME_EXISTS", "A club with this name already exists")
		}
		if err := tenant.Update(*input.ClubName); err != nil {
			return nil, err
		}
	}

	if input.Subdomain != nil && *input.Subdomain != tenant.Subdomain {
		exists, err := s.tenantRepo.ExistsBySubdomain(ctx, *input.Subdomain)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check subdomain availability")
		}
		if exists {
			return nil, shared.NewDomainError("SUBDOMAIN_EXISTS", "Subdomain already exists")
		}
		if err := tenant.SetSubdomain(*input.Subdomain); err != nil {
			return nil, err
		}
	}

	if input.Timezone != nil {
		if err := tenant.SetTimezone(*input.Timezone); err != nil {
			return nil, err
		}
	}

	if input.Metadata != nil {
		if err := tenant.SetMetadata(*input.Metadata); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to update tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tenant")
	}

	s.logger.Info("Tenant updated", zap.String("tenant_id", input.ID.String()))

	return toTenantDTO(tenant), nil
}

// SetPlan updates a tenant's subscription plan
func (s *TenantService) SetPlan(ctx context.Context, id uuid.UUID, plan string) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find tenant")
	}

	if err := tenant.SetPlan(identity.TenantPlan(plan)); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to update tenant plan", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tenant plan")
	}

	s.logger.Info("Tenant plan updated",
		zap.String("tenant_id", id.String()),
		zap.String("plan", plan))

	return toTenantDTO(tenant), nil
}

// Activate activates a tenant
func (s *TenantService) Activate(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	return s.changeStatus(ctx, id, (*identity.Tenant).Activate, "activate")
}

// Deactivate deactivates a tenant
func (s *TenantService) Deactivate(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	return s.changeStatus(ctx, id, (*identity.Tenant).Deactivate, "deactivate")
}

// Suspend suspends a tenant
func (s *TenantService) Suspend(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	return s.changeStatus(ctx, id, (*identity.Tenant).Suspend, "suspend")
}

func (s *TenantService) changeStatus(ctx context.Context, id uuid.UUID, transition func(*identity.Tenant) error, action string) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find tenant")
	}

	if err := transition(tenant); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to "+action+" tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to "+action+" tenant")
	}

	s.logger.Info("Tenant status changed",
		zap.String("tenant_id", id.String()),
		zap.String("action", action))

	return toTenantDTO(tenant), nil
}

// Delete deletes a tenant
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to find tenant")
	}

	// Only inactive tenants can be deleted
	if tenant.IsActive() {
		return shared.NewDomainError("TENANT_STILL_ACTIVE", "Deactivate a tenant before deleting it")
	}

	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete tenant", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete tenant")
	}

	s.logger.Info("Tenant deleted", zap.String("tenant_id", id.String()))

	return nil
}

// GetStats returns tenant statistics
func (s *TenantService) GetStats(ctx context.Context) (*TenantStatsDTO, error) {
	activeCount, err := s.tenantRepo.CountByStatus(ctx, identity.TenantStatusActive)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to get stats")
	}

	inactiveCount, err := s.tenantRepo.CountByStatus(ctx, identity.TenantStatusInactive)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to get stats")
	}

	suspendedCount, err := s.tenantRepo.CountByStatus(ctx, identity.TenantStatusSuspended)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to get stats")
	}

	total, err := s.tenantRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to get stats")
	}

	return &TenantStatsDTO{
		Total:     total,
		Active:    activeCount,
		Inactive:  inactiveCount,
		Suspended: suspendedCount,
	}, nil
}

// TenantStatsDTO represents tenant statistics
type TenantStatsDTO struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	Suspended int64 `json:"suspended"`
}

// toTenantDTO converts domain Tenant to TenantDTO
func toTenantDTO(tenant *identity.Tenant) *TenantDTO {
	return &TenantDTO{
		ID:        tenant.ID,
		ClubName:  tenant.ClubName,
		Subdomain: tenant.Subdomain,
		Status:    string(tenant.Status),
		Plan:      string(tenant.Plan),
		AdminID:   tenant.AdminID,
		Timezone:  tenant.Timezone,
		Metadata:  tenant.Metadata,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}
