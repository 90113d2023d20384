package attendance

import (
	"github.com/clubops/backend/internal/domain/identity"
	"github.com/clubops/backend/internal/domain/shared"
)

// The guard gates every attendance operation by caller role and entity
// type, independent of the route-level role middleware. It is a pure
// decision function: no state, no side effects.

// AuthorizeWrite decides whether a caller may create or mutate attendance
// for the given entity type.
//
//	student rows: COACH or CLUB_ADMIN
//	coach rows:   CLUB_ADMIN only
func AuthorizeWrite(role identity.Role, entityType EntityType) error {
	switch entityType {
	case EntityTypeStudent:
		if role == identity.RoleCoach || role == identity.RoleClubAdmin {
			return nil
		}
		return shared.NewDomainError("FORBIDDEN_ENTITY_TYPE", "Role is not permitted to mark student attendance")
	case EntityTypeCoach:
		if role == identity.RoleClubAdmin {
			return nil
		}
		return shared.NewDomainError("FORBIDDEN_ENTITY_TYPE", "Only club admins can mark coach attendance")
	default:
		return shared.NewDomainError("INVALID_ENTITY_TYPE", "Entity type must be 'student' or 'coach'")
	}
}

// NarrowReadFilter narrows the effective entity-type filter for read and
// report operations. A COACH is always forced to student rows, silently
// overriding whatever was requested.
func NarrowReadFilter(role identity.Role, requested *EntityType) *EntityType {
	if role == identity.RoleCoach {
		student := EntityTypeStudent
		return &student
	}
	return requested
}
