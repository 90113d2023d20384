package roster

import (
	"context"

	"github.com/google/uuid"
)

// SportRepository defines the interface for sport persistence
type SportRepository interface {
	// Create creates a new sport
	Create(ctx context.Context, sport *Sport) error

	// Update updates an existing sport
	Update(ctx context.Context, sport *Sport) error

	// Delete deletes a sport by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a sport by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sport, error)

	// FindByName finds a sport by name within a tenant (case-insensitive)
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Sport, error)

	// FindByTenant returns all sports of a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter SportFilter) ([]*Sport, int64, error)

	// ExistsByName checks if a sport with the given name exists within the
	// tenant, compared case-insensitively
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
}

// BatchRepository defines the interface for batch persistence
type BatchRepository interface {
	// Create creates a new batch including its membership rows
	Create(ctx context.Context, batch *Batch) error

	// Update updates a batch; membership rows are replaced
	Update(ctx context.Context, batch *Batch) error

	// Delete deletes a batch by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a batch by ID with memberships loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindByTenant returns all batches of a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter BatchFilter) ([]*Batch, int64, error)

	// CountBySport counts batches referencing a sport
	CountBySport(ctx context.Context, sportID uuid.UUID) (int64, error)

	// StudentIDs returns the IDs of all students enrolled in the batch
	StudentIDs(ctx context.Context, batchID uuid.UUID) ([]uuid.UUID, error)
}

// StudentRepository defines the interface for student persistence
type StudentRepository interface {
	// Create creates a new student
	Create(ctx context.Context, student *Student) error

	// Update updates an existing student
	Update(ctx context.Context, student *Student) error

	// Delete deletes a student by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a student by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)

	// FindByIDs finds multiple students by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Student, error)

	// FindByTenant returns all students of a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter StudentFilter) ([]*Student, int64, error)
}

// SportFilter contains filter options for querying sports
type SportFilter struct {
	Keyword  string
	Status   *SportStatus
	Page     int
	PageSize int
}

// NewSportFilter creates a SportFilter with default values
func NewSportFilter() SportFilter {
	return SportFilter{Page: 1, PageSize: 20}
}

// WithKeyword sets the search keyword
func (f SportFilter) WithKeyword(keyword string) SportFilter {
	f.Keyword = keyword
	return f
}

// WithStatus sets the status filter
func (f SportFilter) WithStatus(status SportStatus) SportFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f SportFilter) WithPagination(page, pageSize int) SportFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f SportFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f SportFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// BatchFilter contains filter options for querying batches
type BatchFilter struct {
	Keyword  string
	SportID  *uuid.UUID
	CoachID  *uuid.UUID
	Page     int
	PageSize int
}

// NewBatchFilter creates a BatchFilter with default values
func NewBatchFilter() BatchFilter {
	return BatchFilter{Page: 1, PageSize: 20}
}

// WithKeyword sets the search keyword
func (f BatchFilter) WithKeyword(keyword string) BatchFilter {
	f.Keyword = keyword
	return f
}

// WithSportID filters batches by sport
func (f BatchFilter) WithSportID(sportID uuid.UUID) BatchFilter {
	f.SportID = &sportID
	return f
}

// WithCoachID filters batches by assigned coach
func (f BatchFilter) WithCoachID(coachID uuid.UUID) BatchFilter {
	f.CoachID = &coachID
	return f
}

// WithPagination sets pagination parameters
func (f BatchFilter) WithPagination(page, pageSize int) BatchFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f BatchFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f BatchFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// StudentFilter contains filter options for querying students
type StudentFilter struct {
	Keyword   string
	BatchID   *uuid.UUID
	SportID   *uuid.UUID
	FeeStatus *FeeStatus
	Page      int
	PageSize  int
}

// NewStudentFilter creates a StudentFilter with default values
func NewStudentFilter() StudentFilter {
	return StudentFilter{Page: 1, PageSize: 20}
}

// WithKeyword sets the search keyword
func (f StudentFilter) WithKeyword(keyword string) StudentFilter {
	f.Keyword = keyword
	return f
}

// WithBatchID filters students by batch
func (f StudentFilter) WithBatchID(batchID uuid.UUID) StudentFilter {
	f.BatchID = &batchID
	return f
}

// WithSportID filters students by linked sport
func (f StudentFilter) WithSportID(sportID uuid.UUID) StudentFilter {
	f.SportID = &sportID
	return f
}

// WithFeeStatus filters students by fee status
func (f StudentFilter) WithFeeStatus(status FeeStatus) StudentFilter {
	f.FeeStatus = &status
	return f
}

// WithPagination sets pagination parameters
func (f StudentFilter) WithPagination(page, pageSize int) StudentFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f StudentFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f StudentFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
