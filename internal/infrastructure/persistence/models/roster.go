package models

import (
	"strings"
	"time"

	"github.com/clubops/backend/internal/domain/roster"
	"github.com/google/uuid"
)

// SportModel is the persistence model for the Sport domain entity.
type SportModel struct {
	TenantAggregateModel
	Name        string             `gorm:"type:varchar(100);not null;index"`
	Description string             `gorm:"type:text"`
	Status      roster.SportStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (SportModel) TableName() string {
	return "sports"
}

// ToDomain converts the persistence model to a domain Sport entity.
func (m *SportModel) ToDomain() *roster.Sport {
	sport := &roster.Sport{
		Name:        m.Name,
		Description: m.Description,
		Status:      m.Status,
	}
	m.PopulateTenantAggregateRoot(&sport.TenantAggregateRoot)
	return sport
}

// FromDomain populates the persistence model from a domain Sport entity.
func (m *SportModel) FromDomain(s *roster.Sport) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Name = s.Name
	m.Description = s.Description
	m.Status = s.Status
}

// SportModelFromDomain creates a new persistence model from a domain Sport entity.
func SportModelFromDomain(s *roster.Sport) *SportModel {
	m := &SportModel{}
	m.FromDomain(s)
	return m
}

// BatchModel is the persistence model for the Batch domain entity.
// Coach and student memberships live in their own tables and are
// loaded separately by the repository.
type BatchModel struct {
	TenantAggregateModel
	Name      string    `gorm:"type:varchar(100);not null;index"`
	SportID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Capacity  int       `gorm:"not null"`
	StartTime string    `gorm:"type:varchar(5);not null"`
	EndTime   string    `gorm:"type:varchar(5);not null"`
	Schedule  string    `gorm:"type:varchar(30);not null"` // comma-joined weekday codes
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "batches"
}

// ToDomain converts the persistence model to a domain Batch entity.
// CoachIDs and StudentIDs must be loaded separately by the repository.
func (m *BatchModel) ToDomain() *roster.Batch {
	batch := &roster.Batch{
		Name:       m.Name,
		SportID:    m.SportID,
		Capacity:   m.Capacity,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Schedule:   scheduleFromColumn(m.Schedule),
		CoachIDs:   make([]uuid.UUID, 0),
		StudentIDs: make([]uuid.UUID, 0),
	}
	m.PopulateTenantAggregateRoot(&batch.TenantAggregateRoot)
	return batch
}

// FromDomain populates the persistence model from a domain Batch entity.
func (m *BatchModel) FromDomain(b *roster.Batch) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.Name = b.Name
	m.SportID = b.SportID
	m.Capacity = b.Capacity
	m.StartTime = b.StartTime
	m.EndTime = b.EndTime
	m.Schedule = scheduleToColumn(b.Schedule)
}

// BatchModelFromDomain creates a new persistence model from a domain Batch entity.
func BatchModelFromDomain(b *roster.Batch) *BatchModel {
	m := &BatchModel{}
	m.FromDomain(b)
	return m
}

func scheduleToColumn(schedule []roster.Weekday) string {
	parts := make([]string, len(schedule))
	for i, day := range schedule {
		parts[i] = string(day)
	}
	return strings.Join(parts, ",")
}

func scheduleFromColumn(column string) []roster.Weekday {
	if column == "" {
		return make([]roster.Weekday, 0)
	}
	parts := strings.Split(column, ",")
	schedule := make([]roster.Weekday, len(parts))
	for i, part := range parts {
		schedule[i] = roster.Weekday(part)
	}
	return schedule
}

// BatchCoachModel is the persistence model for batch coach assignments.
type BatchCoachModel struct {
	BatchID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CoachID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BatchCoachModel) TableName() string {
	return "batch_coaches"
}

// BatchStudentModel is the persistence model for batch enrollments.
type BatchStudentModel struct {
	BatchID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BatchStudentModel) TableName() string {
	return "batch_students"
}

// StudentModel is the persistence model for the Student domain entity.
type StudentModel struct {
	TenantAggregateModel
	Name        string           `gorm:"type:varchar(200);not null;index"`
	Email       string           `gorm:"type:varchar(200)"`
	Contact     string           `gorm:"type:varchar(50)"`
	DateOfBirth *time.Time
	JoiningDate time.Time        `gorm:"not null"`
	FeeStatus   roster.FeeStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	BatchID     *uuid.UUID       `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts the persistence model to a domain Student entity.
// SportIDs must be loaded separately by the repository.
func (m *StudentModel) ToDomain() *roster.Student {
	student := &roster.Student{
		Name:        m.Name,
		Email:       m.Email,
		Contact:     m.Contact,
		DateOfBirth: m.DateOfBirth,
		JoiningDate: m.JoiningDate,
		SportIDs:    make([]uuid.UUID, 0),
		FeeStatus:   m.FeeStatus,
		BatchID:     m.BatchID,
	}
	m.PopulateTenantAggregateRoot(&student.TenantAggregateRoot)
	return student
}

// FromDomain populates the persistence model from a domain Student entity.
func (m *StudentModel) FromDomain(s *roster.Student) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Name = s.Name
	m.Email = s.Email
	m.Contact = s.Contact
	m.DateOfBirth = s.DateOfBirth
	m.JoiningDate = s.JoiningDate
	m.FeeStatus = s.FeeStatus
	m.BatchID = s.BatchID
}

// StudentModelFromDomain creates a new persistence model from a domain Student entity.
func StudentModelFromDomain(s *roster.Student) *StudentModel {
	m := &StudentModel{}
	m.FromDomain(s)
	return m
}

// StudentSportModel is the persistence model for student sport links.
type StudentSportModel struct {
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SportID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StudentSportModel) TableName() string {
	return "student_sports"
}
