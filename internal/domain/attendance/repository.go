package attendance

import (
	"context"

	"github.com/google/uuid"
)

// RangeQuery describes a ledger read over an inclusive day window.
// EntityType and EntityID narrow the result when set.
type RangeQuery struct {
	TenantID   uuid.UUID
	EntityType *EntityType
	EntityID   *uuid.UUID
	Window     DayWindow
}

// Summary is one group of a monthly aggregation, keyed by entity
type Summary struct {
	EntityID    uuid.UUID  `json:"entity_id"`
	EntityType  EntityType `json:"entity_type"`
	TotalDays   int        `json:"total_days"`
	PresentDays int        `json:"present_days"`
	AbsentDays  int        `json:"absent_days"`
	LateDays    int        `json:"late_days"`
}

// RecordRepository defines the interface for attendance persistence.
//
// Create must surface a violation of the (tenant, entity type, entity id,
// day) unique constraint as shared.ErrAlreadyExists so callers can treat
// it as the duplicate-mark conflict; the constraint, not a prior read,
// is what enforces the one-record-per-day invariant.
type RecordRepository interface {
	// Create inserts a new record
	Create(ctx context.Context, record *Record) error

	// CreateIgnoringDuplicates inserts records, silently skipping any that
	// would violate the per-day unique constraint
	CreateIgnoringDuplicates(ctx context.Context, records []*Record) error

	// Update persists a mutated record
	Update(ctx context.Context, record *Record) error

	// FindByID finds a record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// FindByEntityAndDay finds the record for one entity on one day
	FindByEntityAndDay(ctx context.Context, tenantID uuid.UUID, entity EntityRef, day DayWindow) (*Record, error)

	// FindByRange returns records in the window, sorted by date descending
	FindByRange(ctx context.Context, query RangeQuery) ([]*Record, error)

	// FindByEntityAndRange returns one entity's records in the window,
	// sorted by date descending
	FindByEntityAndRange(ctx context.Context, entity EntityRef, window DayWindow) ([]*Record, error)

	// ReplaceForDay atomically deletes all student rows for the given day
	// whose entity ID is in studentIDs, then inserts the replacement
	// records. Delete and insert run in one transaction.
	ReplaceForDay(ctx context.Context, tenantID uuid.UUID, day DayWindow, studentIDs []uuid.UUID, records []*Record) error

	// Summarize groups records in the window by (entity id, entity type)
	// with per-status counts. When entityIDs is non-nil, only those
	// entities are included.
	Summarize(ctx context.Context, tenantID uuid.UUID, window DayWindow, entityIDs []uuid.UUID) ([]Summary, error)
}
