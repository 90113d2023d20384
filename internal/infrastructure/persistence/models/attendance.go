package models

import (
	"time"

	"github.com/clubops/backend/internal/domain/attendance"
	"github.com/google/uuid"
)

// AttendanceRecordModel is the persistence model for the attendance
// Record domain entity. The composite unique index is what enforces the
// one-record-per-entity-per-day invariant; inserts race against it, not
// against a prior read. TenantID is declared inline instead of through
// TenantAggregateModel so it can take part in that index.
type AttendanceRecordModel struct {
	AggregateModel
	TenantID   uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_entity_day,priority:1;index"`
	CreatedBy  *uuid.UUID            `gorm:"type:uuid;index"`
	EntityType attendance.EntityType `gorm:"type:varchar(20);not null;uniqueIndex:idx_attendance_entity_day,priority:2"`
	EntityID   uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_entity_day,priority:3"`
	Date       time.Time             `gorm:"not null;uniqueIndex:idx_attendance_entity_day,priority:4;index"`
	Status     attendance.Status     `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

// ToDomain converts the persistence model to a domain Record entity.
func (m *AttendanceRecordModel) ToDomain() *attendance.Record {
	record := &attendance.Record{
		Entity: attendance.EntityRef{
			Type: m.EntityType,
			ID:   m.EntityID,
		},
		Date:   m.Date,
		Status: m.Status,
	}
	record.TenantAggregateRoot.BaseAggregateRoot.BaseEntity.ID = m.ID
	record.TenantAggregateRoot.BaseAggregateRoot.BaseEntity.CreatedAt = m.CreatedAt
	record.TenantAggregateRoot.BaseAggregateRoot.BaseEntity.UpdatedAt = m.UpdatedAt
	record.TenantAggregateRoot.BaseAggregateRoot.Version = m.Version
	record.TenantID = m.TenantID
	record.CreatedBy = m.CreatedBy
	return record
}

// FromDomain populates the persistence model from a domain Record entity.
func (m *AttendanceRecordModel) FromDomain(r *attendance.Record) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.TenantID = r.TenantID
	m.CreatedBy = r.CreatedBy
	m.EntityType = r.Entity.Type
	m.EntityID = r.Entity.ID
	m.Date = r.Date
	m.Status = r.Status
}

// AttendanceRecordModelFromDomain creates a new persistence model from a domain Record entity.
func AttendanceRecordModelFromDomain(r *attendance.Record) *AttendanceRecordModel {
	m := &AttendanceRecordModel{}
	m.FromDomain(r)
	return m
}
