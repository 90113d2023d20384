package attendance

import (
	"time"

	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the presence status of an attendance record
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
)

// ParseStatus validates a raw status value; empty defaults to PRESENT
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusPresent, nil
	}
	switch Status(raw) {
	case StatusPresent, StatusAbsent, StatusLate:
		return Status(raw), nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS", "Status must be PRESENT, ABSENT, or LATE")
	}
}

// Record is one presence entry: at most one exists per
// (tenant, entity type, entity id, calendar day). The uniqueness is
// enforced by the storage layer, not by a check-then-insert.
type Record struct {
	shared.TenantAggregateRoot
	Entity EntityRef
	Date   time.Time // start-of-day in the tenant's timezone
	Status Status
}

// NewRecord creates an attendance record for the day window containing date
func NewRecord(tenantID uuid.UUID, entity EntityRef, day DayWindow, status Status) (*Record, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if err := entity.Validate(); err != nil {
		return nil, err
	}
	if status == "" {
		status = StatusPresent
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	record := &Record{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Entity:              entity,
		Date:                day.Start,
		Status:              status,
	}

	record.AddDomainEvent(NewRecordMarkedEvent(record))

	return record, nil
}

// UpdateStatus overwrites the record's status
func (r *Record) UpdateStatus(status Status) error {
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return err
	}

	oldStatus := r.Status
	r.Status = parsed
	r.Touch()
	r.IncrementVersion()

	r.AddDomainEvent(NewRecordStatusChangedEvent(r, oldStatus, status))

	return nil
}

// ISODay returns the record's calendar day as YYYY-MM-DD
func (r *Record) ISODay() string {
	return r.Date.Format("2006-01-02")
}
