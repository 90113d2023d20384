package roster

import (
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeSport   = "Sport"
	AggregateTypeBatch   = "Batch"
	AggregateTypeStudent = "Student"
)

// Event type constants
const (
	EventTypeSportCreated   = "SportCreated"
	EventTypeBatchCreated   = "BatchCreated"
	EventTypeStudentCreated = "StudentCreated"
)

// SportCreatedEvent is published when a sport is created
type SportCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewSportCreatedEvent creates a new SportCreatedEvent
func NewSportCreatedEvent(sport *Sport) *SportCreatedEvent {
	return &SportCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSportCreated, AggregateTypeSport, sport.ID, sport.TenantID),
		Name:            sport.Name,
	}
}

// BatchCreatedEvent is published when a batch is created
type BatchCreatedEvent struct {
	shared.BaseDomainEvent
	Name    string    `json:"name"`
	SportID uuid.UUID `json:"sport_id"`
}

// NewBatchCreatedEvent creates a new BatchCreatedEvent
func NewBatchCreatedEvent(batch *Batch) *BatchCreatedEvent {
	return &BatchCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchCreated, AggregateTypeBatch, batch.ID, batch.TenantID),
		Name:            batch.Name,
		SportID:         batch.SportID,
	}
}

// StudentCreatedEvent is published when a student is created
type StudentCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewStudentCreatedEvent creates a new StudentCreatedEvent
func NewStudentCreatedEvent(student *Student) *StudentCreatedEvent {
	return &StudentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStudentCreated, AggregateTypeStudent, student.ID, student.TenantID),
		Name:            student.Name,
	}
}
