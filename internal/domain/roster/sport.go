package roster

import (
	"strings"

	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SportStatus represents the status of a sport
type SportStatus string

const (
	SportStatusActive   SportStatus = "ACTIVE"
	SportStatusInactive SportStatus = "INACTIVE"
)

// Sport represents one sport offered by a club.
// Its name is unique within the tenant, compared case-insensitively.
type Sport struct {
	shared.TenantAggregateRoot
	Name        string
	Description string
	Status      SportStatus
}

// NewSport creates a new sport for a tenant
func NewSport(tenantID uuid.UUID, name, description string) (*Sport, error) {
	if err := validateSportName(name); err != nil {
		return nil, err
	}
	if len(description) > 1000 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 1000 characters")
	}

	sport := &Sport{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Description:         description,
		Status:              SportStatusActive,
	}

	sport.AddDomainEvent(NewSportCreatedEvent(sport))

	return sport, nil
}

// Update updates the sport's name and description
func (s *Sport) Update(name, description string) error {
	if err := validateSportName(name); err != nil {
		return err
	}
	if len(description) > 1000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 1000 characters")
	}

	s.Name = strings.TrimSpace(name)
	s.Description = description
	s.Touch()
	s.IncrementVersion()

	return nil
}

// Activate activates the sport
func (s *Sport) Activate() error {
	if s.Status == SportStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Sport is already active")
	}

	s.Status = SportStatusActive
	s.Touch()
	s.IncrementVersion()

	return nil
}

// Deactivate deactivates the sport
func (s *Sport) Deactivate() error {
	if s.Status == SportStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Sport is already inactive")
	}

	s.Status = SportStatusInactive
	s.Touch()
	s.IncrementVersion()

	return nil
}

// IsActive returns true if the sport is active
func (s *Sport) IsActive() bool {
	return s.Status == SportStatusActive
}

func validateSportName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Sport name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Sport name cannot exceed 100 characters")
	}
	return nil
}
