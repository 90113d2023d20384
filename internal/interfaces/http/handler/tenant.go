package handler

import (
	"context"

	"github.com/clubops/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantHandler handles tenant management HTTP requests.
// All routes are restricted to super admins by the router, except
// GetMine, which serves the authenticated club admin's own tenant.
type TenantHandler struct {
	BaseHandler
	tenantService *identity.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *identity.TenantService) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// Create registers a new club tenant
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), identity.CreateTenantInput{
		ClubName:  req.ClubName,
		Subdomain: req.Subdomain,
		Timezone:  req.Timezone,
		Plan:      req.Plan,
		Metadata:  req.Metadata,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTenantResponse(tenant))
}

// CreateClubAdmin creates the administrator account for a tenant
func (h *TenantHandler) CreateClubAdmin(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateClubAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	admin, err := h.tenantService.CreateClubAdmin(c.Request.Context(), identity.CreateClubAdminInput{
		TenantID: tenantID,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toUserResponse(admin))
}

// GetByID retrieves a tenant by its ID
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTenantResponse(tenant))
}

// GetBySubdomain retrieves a tenant by its unique subdomain
func (h *TenantHandler) GetBySubdomain(c *gin.Context) {
	subdomain := c.Param("subdomain")
	if subdomain == "" {
		h.BadRequest(c, "Subdomain is required")
		return
	}

	tenant, err := h.tenantService.GetBySubdomain(c.Request.Context(), subdomain)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTenantResponse(tenant))
}

// GetMine returns the tenant administered by the authenticated club admin,
// resolved through the tenant's admin reverse lookup rather than the token,
// so a stale tenant claim can never serve another club's profile
func (h *TenantHandler) GetMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tenant, err := h.tenantService.GetByAdminID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTenantResponse(tenant))
}

// List returns a paginated list of tenants
func (h *TenantHandler) List(c *gin.Context) {
	var req ListTenantsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.tenantService.List(c.Request.Context(), identity.TenantFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		SortBy:   req.SortBy,
		SortDir:  req.SortDir,
		Keyword:  req.Keyword,
		Status:   req.Status,
		Plan:     req.Plan,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]TenantResponse, len(result.Tenants))
	for i := range result.Tenants {
		responses[i] = toTenantResponse(&result.Tenants[i])
	}

	h.SuccessWithMeta(c, responses, result.Total, result.Page, result.PageSize)
}

// Update modifies a tenant's profile fields
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), identity.UpdateTenantInput{
		ID:        id,
		ClubName:  req.ClubName,
		Subdomain: req.Subdomain,
		Timezone:  req.Timezone,
		Metadata:  req.Metadata,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTenantResponse(tenant))
}

// SetPlan changes a tenant's subscription plan
func (h *TenantHandler) SetPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req SetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.SetPlan(c.Request.Context(), id, req.Plan)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTenantResponse(tenant))
}

// Activate transitions a tenant to ACTIVE status
func (h *TenantHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.tenantService.Activate)
}

// Deactivate transitions a tenant to INACTIVE status
func (h *TenantHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.tenantService.Deactivate)
}

// Suspend transitions a tenant to SUSPENDED status
func (h *TenantHandler) Suspend(c *gin.Context) {
	h.changeStatus(c, h.tenantService.Suspend)
}

func (h *TenantHandler) changeStatus(c *gin.Context, op func(context.Context, uuid.UUID) (*identity.TenantDTO, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTenantResponse(tenant))
}

// Delete removes an inactive tenant
func (h *TenantHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetStats returns platform-wide tenant counts by status
func (h *TenantHandler) GetStats(c *gin.Context) {
	stats, err := h.tenantService.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
