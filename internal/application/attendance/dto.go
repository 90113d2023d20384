package attendance

import (
	"time"

	"github.com/clubops/backend/internal/domain/attendance"
	"github.com/clubops/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntitySummary is the display-ready expansion of a record's entity
// reference: name/email/contact for students, name/salary for coaches.
type EntitySummary struct {
	ID      uuid.UUID        `json:"id"`
	Type    string           `json:"type"`
	Name    string           `json:"name"`
	Email   string           `json:"email,omitempty"`
	Contact string           `json:"contact,omitempty"`
	Salary  *decimal.Decimal `json:"salary,omitempty"`
}

// RecordDTO is a resolved attendance record: the tenant and entity
// references are expanded at read time, never stored denormalized.
type RecordDTO struct {
	ID         uuid.UUID     `json:"id"`
	TenantID   uuid.UUID     `json:"tenant_id"`
	TenantName string        `json:"tenant_name"`
	Entity     EntitySummary `json:"entity"`
	Date       string        `json:"date"`
	Status     string        `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// MarkInput contains the data needed to mark attendance for one entity
type MarkInput struct {
	TenantID   uuid.UUID
	Role       identity.Role
	EntityType string
	EntityID   uuid.UUID
	Date       time.Time
	Status     string
}

// BulkMarkEntry is one student's status in a bulk mark call
type BulkMarkEntry struct {
	StudentID uuid.UUID
	Status    string
}

// BulkMarkInput contains the data needed to overwrite a batch's student
// attendance for one day
type BulkMarkInput struct {
	TenantID uuid.UUID
	Role     identity.Role
	BatchID  uuid.UUID
	Date     time.Time
	Entries  []BulkMarkEntry
}

// UpdateStatusInput contains the data needed to change a record's status
type UpdateStatusInput struct {
	TenantID uuid.UUID
	Role     identity.Role
	RecordID uuid.UUID
	Status   string
}

// RangeInput contains the data for a date-range ledger read
type RangeInput struct {
	TenantID   uuid.UUID
	Role       identity.Role
	EntityType *string
	EntityID   *uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
}

// TodayResult is the current day's ledger slice
type TodayResult struct {
	Day     string      `json:"day"`
	Count   int         `json:"count"`
	Records []RecordDTO `json:"records"`
}

// MonthlySummaryInput contains the data for a monthly aggregation
type MonthlySummaryInput struct {
	TenantID uuid.UUID
	Role     identity.Role
	Month    int
	Year     int
	BatchID  *uuid.UUID
}

// EntityReportInput contains the data for a single-entity report
type EntityReportInput struct {
	TenantID   uuid.UUID
	Role       identity.Role
	EntityType string
	EntityID   uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
}

// ReportSummary aggregates one entity's records over a window
type ReportSummary struct {
	TotalDays            int             `json:"total_days"`
	PresentDays          int             `json:"present_days"`
	AbsentDays           int             `json:"absent_days"`
	LateDays             int             `json:"late_days"`
	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
}

// EntityReportResult is the records plus their summary for one entity
type EntityReportResult struct {
	Records []RecordDTO   `json:"records"`
	Summary ReportSummary `json:"summary"`
}

// MonthlySummaryResult is the month's per-entity aggregation
type MonthlySummaryResult struct {
	Month     int                  `json:"month"`
	Year      int                  `json:"year"`
	Summaries []attendance.Summary `json:"summaries"`
}
