package handler

import (
	"time"

	"github.com/clubops/backend/internal/application/identity"
	"github.com/google/uuid"
)

// =====================
// Tenant Request DTOs
// =====================

// CreateTenantRequest represents the request body for tenant creation
type CreateTenantRequest struct {
	ClubName  string `json:"club_name" binding:"required,min=2,max=200"`
	Subdomain string `json:"subdomain" binding:"required,min=2,max=100"`
	Timezone  string `json:"timezone" binding:"omitempty,max=64"`
	Plan      string `json:"plan" binding:"omitempty,oneof=FREE BASIC PRO ENTERPRISE"`
	Metadata  string `json:"metadata" binding:"omitempty,max=4096"`
}

// UpdateTenantRequest represents the request body for tenant update.
// Pointer fields distinguish "leave unchanged" from "set to empty".
type UpdateTenantRequest struct {
	ClubName  *string `json:"club_name" binding:"omitempty,min=2,max=200"`
	Subdomain *string `json:"subdomain" binding:"omitempty,min=2,max=100"`
	Timezone  *string `json:"timezone" binding:"omitempty,max=64"`
	Metadata  *string `json:"metadata" binding:"omitempty,max=4096"`
}

// CreateClubAdminRequest represents the request body for creating a tenant's admin
type CreateClubAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	FullName string `json:"full_name" binding:"required,min=2,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// SetPlanRequest represents the request body for a plan change
type SetPlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=FREE BASIC PRO ENTERPRISE"`
}

// ListTenantsRequest represents the query parameters for tenant listing
type ListTenantsRequest struct {
	Keyword  string `form:"keyword"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
	Plan     string `form:"plan" binding:"omitempty,oneof=FREE BASIC PRO ENTERPRISE"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=club_name subdomain status plan created_at updated_at"`
	SortDir  string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// =====================
// Tenant Response DTOs
// =====================

// TenantResponse represents tenant data in responses
type TenantResponse struct {
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

func toTenantResponse(t *identity.TenantDTO) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		ClubName:  t.ClubName,
		Subdomain: t.Subdomain,
		Status:    t.Status,
		Plan:      t.Plan,
		AdminID:   t.AdminID,
		Timezone:  t.Timezone,
		Metadata:  t.Metadata,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
