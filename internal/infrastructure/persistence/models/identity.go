package models

import (
	"time"

	"github.com/clubops/backend/internal/domain/identity"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	AggregateModel
	ClubName  string                `gorm:"type:varchar(200);not null;uniqueIndex"`
	Subdomain string                `gorm:"type:varchar(100);not null;uniqueIndex"`
	Plan      identity.TenantPlan   `gorm:"type:varchar(20);not null;default:'FREE'"`
	Status    identity.TenantStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	AdminID   *uuid.UUID            `gorm:"type:uuid;uniqueIndex"`
	Timezone  string                `gorm:"type:varchar(64);not null;default:'UTC'"`
	Metadata  string                `gorm:"type:text;not null;default:'{}'"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ClubName:  m.ClubName,
		Subdomain: m.Subdomain,
		Plan:      m.Plan,
		Status:    m.Status,
		AdminID:   m.AdminID,
		Timezone:  m.Timezone,
		Metadata:  m.Metadata,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.ClubName = t.ClubName
	m.Subdomain = t.Subdomain
	m.Plan = t.Plan
	m.Status = t.Status
	m.AdminID = t.AdminID
	m.Timezone = t.Timezone
	m.Metadata = t.Metadata
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// UserModel is the persistence model for the User domain entity.
// Super-admins have no tenant, so TenantID is nullable here unlike
// the tenant-scoped aggregates.
type UserModel struct {
	AggregateModel
	TenantID       *uuid.UUID          `gorm:"type:uuid;index"`
	Username       string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string              `gorm:"type:varchar(200)"`
	FullName       string              `gorm:"type:varchar(200)"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	Role           identity.Role       `gorm:"type:varchar(20);not null;index"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Salary         *decimal.Decimal    `gorm:"type:decimal(12,2)"`
	LastLoginAt    *time.Time          `gorm:"index"`
	LastLoginIP    string              `gorm:"type:varchar(45)"`
	FailedAttempts int                 `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		TenantID:       m.TenantID,
		Username:       m.Username,
		Email:          m.Email,
		FullName:       m.FullName,
		PasswordHash:   m.PasswordHash,
		Role:           m.Role,
		Status:         m.Status,
		Salary:         m.Salary,
		LastLoginAt:    m.LastLoginAt,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.TenantID = u.TenantID
	m.Username = u.Username
	m.Email = u.Email
	m.FullName = u.FullName
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Status = u.Status
	m.Salary = u.Salary
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
