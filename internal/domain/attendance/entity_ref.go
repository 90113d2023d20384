package attendance

import (
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EntityType discriminates who an attendance record is about.
// The enum is closed: anything else is rejected as invalid input.
type EntityType string

const (
	EntityTypeStudent EntityType = "student"
	EntityTypeCoach   EntityType = "coach"
)

// ParseEntityType validates and converts a raw entity type value
func ParseEntityType(raw string) (EntityType, error) {
	switch EntityType(raw) {
	case EntityTypeStudent:
		return EntityTypeStudent, nil
	case EntityTypeCoach:
		return EntityTypeCoach, nil
	default:
		return "", shared.NewDomainError("INVALID_ENTITY_TYPE", "Entity type must be 'student' or 'coach'")
	}
}

// EntityRef is a tagged reference to the subject of an attendance record:
// a Student or a User with role COACH, discriminated by Type.
type EntityRef struct {
	Type EntityType
	ID   uuid.UUID
}

// StudentRef builds a reference to a student
func StudentRef(id uuid.UUID) EntityRef {
	return EntityRef{Type: EntityTypeStudent, ID: id}
}

// CoachRef builds a reference to a coach
func CoachRef(id uuid.UUID) EntityRef {
	return EntityRef{Type: EntityTypeCoach, ID: id}
}

// NewEntityRef validates and builds a reference from raw parts
func NewEntityRef(rawType string, id uuid.UUID) (EntityRef, error) {
	entityType, err := ParseEntityType(rawType)
	if err != nil {
		return EntityRef{}, err
	}
	if id == uuid.Nil {
		return EntityRef{}, shared.NewDomainError("INVALID_ENTITY_ID", "Entity ID cannot be empty")
	}
	return EntityRef{Type: entityType, ID: id}, nil
}

// Validate checks the reference is well-formed
func (r EntityRef) Validate() error {
	if _, err := ParseEntityType(string(r.Type)); err != nil {
		return err
	}
	if r.ID == uuid.Nil {
		return shared.NewDomainError("INVALID_ENTITY_ID", "Entity ID cannot be empty")
	}
	return nil
}

// IsStudent returns true for student references
func (r EntityRef) IsStudent() bool {
	return r.Type == EntityTypeStudent
}

// IsCoach returns true for coach references
func (r EntityRef) IsCoach() bool {
	return r.Type == EntityTypeCoach
}
