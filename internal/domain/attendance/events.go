package attendance

import (
	"time"

	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeRecord = "AttendanceRecord"

// Event type constants
const (
	EventTypeRecordMarked        = "AttendanceMarked"
	EventTypeRecordStatusChanged = "AttendanceStatusChanged"
)

// RecordMarkedEvent is published when an attendance record is created
type RecordMarkedEvent struct {
	shared.BaseDomainEvent
	EntityType EntityType `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	Date       time.Time  `json:"date"`
	Status     Status     `json:"status"`
}

// NewRecordMarkedEvent creates a new RecordMarkedEvent
func NewRecordMarkedEvent(record *Record) *RecordMarkedEvent {
	return &RecordMarkedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordMarked, AggregateTypeRecord, record.ID, record.TenantID),
		EntityType:      record.Entity.Type,
		EntityID:        record.Entity.ID,
		Date:            record.Date,
		Status:          record.Status,
	}
}

// RecordStatusChangedEvent is published when a record's status is updated
type RecordStatusChangedEvent struct {
	shared.BaseDomainEvent
	EntityType EntityType `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	OldStatus  Status     `json:"old_status"`
	NewStatus  Status     `json:"new_status"`
}

// NewRecordStatusChangedEvent creates a new RecordStatusChangedEvent
func NewRecordStatusChangedEvent(record *Record, oldStatus, newStatus Status) *RecordStatusChangedEvent {
	return &RecordStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordStatusChanged, AggregateTypeRecord, record.ID, record.TenantID),
		EntityType:      record.Entity.Type,
		EntityID:        record.Entity.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
