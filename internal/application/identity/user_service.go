package identity

import (
	"context"
	"time"

	"github.com/clubops/backend/internal/domain/identity"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UserService handles user management operations. Club admins use it to
// manage coach accounts inside their own tenant.
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateCoachInput contains input for creating a coach account
type CreateCoachInput struct {
	TenantID uuid.UUID
	Username string
	Password string
	FullName string
	Email    string
	Salary   *decimal.Decimal
}

// UpdateUserInput contains input for updating a user
type UpdateUserInput struct {
	ID       uuid.UUID
	TenantID uuid.UUID // tenant of the acting club admin, for scoping
	Email    *string
	FullName *string
	Salary   *decimal.Decimal
}

// UserDTO represents user data transfer object
type UserDTO struct {
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

// UserListResult represents paginated user list result
type UserListResult struct {
	Users      []UserDTO `json:"users"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// CreateCoach creates a new coach account inside a tenant
func (s *UserService) CreateCoach(ctx context.Context, input CreateCoachInput) (*UserDTO, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
	}

	coach, err := identity.NewCoach(input.TenantID, input.Username, input.Password, input.FullName)
	if err != nil {
		return nil, err
	}
	if input.Email != "" {
		if err := coach.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}
	if input.Salary != nil {
		if err := coach.SetSalary(*input.Salary); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, coach); err != nil {
		s.logger.Error("Failed to create coach", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create coach")
	}

	s.logger.Info("Coach created",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("user_id", coach.ID.String()))

	return toUserDTO(coach), nil
}

// GetByID retrieves a user scoped to the acting tenant
func (s *UserService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findTenantUser(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// ListCoaches returns all coach accounts for a tenant
func (s *UserService) ListCoaches(ctx context.Context, tenantID uuid.UUID) ([]UserDTO, error) {
	coaches, err := s.userRepo.FindCoachesByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to list coaches", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list coaches")
	}

	dtos := make([]UserDTO, len(coaches))
	for i, coach := range coaches {
		dtos[i] = *toUserDTO(coach)
	}
	return dtos, nil
}

// List returns users matching the filter with pagination
func (s *UserService) List(ctx context.Context, filter identity.UserFilter) (*UserListResult, error) {
	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	pageSize := filter.Limit()
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = *toUserDTO(user)
	}

	return &UserListResult{
		Users:      dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update updates a user's profile fields
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.findTenantUser(ctx, input.TenantID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if *input.Email != user.Email && *input.Email != "" {
			exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
			if err != nil {
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
			}
			if exists {
				return nil, shared.NewDomainError("EMAIL_EXISTS", "Email already exists")
			}
		}
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}

	if input.FullName != nil {
		if err := user.SetFullName(*input.FullName); err != nil {
			return nil, err
		}
	}

	if input.Salary != nil {
		if err := user.SetSalary(*input.Salary); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	s.logger.Info("User updated", zap.String("user_id", input.ID.String()))

	return toUserDTO(user), nil
}

// Activate activates a user account
func (s *UserService) Activate(ctx context.Context, tenantID, id uuid.UUID) (*UserDTO, error) {
	return s.changeStatus(ctx, tenantID, id, (*identity.User).Activate, "activate")
}

// Deactivate deactivates a user account
func (s *UserService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*UserDTO, error) {
	return s.changeStatus(ctx, tenantID, id, (*identity.User).Deactivate, "deactivate")
}

// Unlock clears a user's lockout state
func (s *UserService) Unlock(ctx context.Context, tenantID, id uuid.UUID) (*UserDTO, error) {
	return s.changeStatus(ctx, tenantID, id, (*identity.User).Unlock, "unlock")
}

func (s *UserService) changeStatus(ctx context.Context, tenantID, id uuid.UUID, transition func(*identity.User) error, action string) (*UserDTO, error) {
	user, err := s.findTenantUser(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := transition(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to "+action+" user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to "+action+" user")
	}

	s.logger.Info("User status changed",
		zap.String("user_id", id.String()),
		zap.String("action", action))

	return toUserDTO(user), nil
}

// ResetPassword sets a new password for a user without requiring the old one.
// This is the club-admin-side reset, not self-service.
func (s *UserService) ResetPassword(ctx context.Context, tenantID, id uuid.UUID, newPassword string) error {
	user, err := s.findTenantUser(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to reset password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	s.logger.Info("Password reset", zap.String("user_id", id.String()))

	return nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	user, err := s.findTenantUser(ctx, tenantID, id)
	if err != nil {
		return err
	}

	// The owning club admin cannot be removed through this surface
	if user.IsClubAdmin() {
		return shared.NewDomainError("CANNOT_DELETE_ADMIN", "The club admin account cannot be deleted")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete user")
	}

	s.logger.Info("User deleted", zap.String("user_id", id.String()))

	return nil
}

// findTenantUser loads a user and checks it belongs to the acting tenant.
// A user from another tenant is reported as not found, not forbidden.
func (s *UserService) findTenantUser(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find user")
	}
	if !user.BelongsToTenant(tenantID) {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return user, nil
}

// toUserDTO converts domain User to UserDTO
func toUserDTO(user *identity.User) *UserDTO {
	return &UserDTO{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        string(user.Role),
		Status:      string(user.Status),
		Salary:      user.Salary,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
