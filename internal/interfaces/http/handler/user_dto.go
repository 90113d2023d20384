package handler

import (
	"time"

	"github.com/clubops/backend/internal/application/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================
// User Request DTOs
// =====================

// CreateCoachRequest represents the request body for coach creation
type CreateCoachRequest struct {
	Username string           `json:"username" binding:"required,min=3,max=100"`
	Password string           `json:"password" binding:"required,min=8,max=128"`
	FullName string           `json:"full_name" binding:"required,min=2,max=200"`
	Email    string           `json:"email" binding:"omitempty,email"`
	Salary   *decimal.Decimal `json:"salary"`
}

// UpdateUserRequest represents the request body for user update.
// Pointer fields distinguish "leave unchanged" from "set to empty".
type UpdateUserRequest struct {
	Email    *string          `json:"email" binding:"omitempty,email"`
	FullName *string          `json:"full_name" binding:"omitempty,min=2,max=200"`
	Salary   *decimal.Decimal `json:"salary"`
}

// ResetPasswordRequest represents the request body for an admin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ListUsersRequest represents the query parameters for user listing
type ListUsersRequest struct {
	Keyword  string `form:"keyword"`
	Role     string `form:"role" binding:"omitempty,oneof=CLUB_ADMIN COACH"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE LOCKED DEACTIVATED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// =====================
// User Response DTOs
// =====================

// UserResponse represents user data in responses.
// Salary only appears for coach accounts.
type UserResponse struct {
	ID          uuid.UUID        `json:"id"`
	TenantID    *uuid.UUID       `json:"tenant_id,omitempty"`
	Username    string           `json:"username"`
	Email       string           `json:"email,omitempty"`
	FullName    string           `json:"full_name"`
	Role        string           `json:"role"`
	Status      string           `json:"status"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func toUserResponse(u *identity.UserDTO) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		Status:      u.Status,
		Salary:      u.Salary,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
