package persistence

import (
	"context"
	"errors"

	"github.com/clubops/backend/internal/domain/attendance"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/clubops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRecordRepository implements attendance.RecordRepository using GORM.
// The (tenant_id, entity_type, entity_id, date) unique index on the
// table is what enforces the one-record-per-day invariant; Create
// surfaces its violation as shared.ErrAlreadyExists.
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// Create inserts a new record
func (r *GormRecordRepository) Create(ctx context.Context, record *attendance.Record) error {
	model := models.AttendanceRecordModelFromDomain(record)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// CreateIgnoringDuplicates inserts records, silently skipping any that
// would violate the per-day unique constraint
func (r *GormRecordRepository) CreateIgnoringDuplicates(ctx context.Context, records []*attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	recordModels := make([]models.AttendanceRecordModel, len(records))
	for i, record := range records {
		recordModels[i] = *models.AttendanceRecordModelFromDomain(record)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&recordModels).Error
}

// Update persists a mutated record
func (r *GormRecordRepository) Update(ctx context.Context, record *attendance.Record) error {
	model := models.AttendanceRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a record by ID
func (r *GormRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*attendance.Record, error) {
	var model models.AttendanceRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEntityAndDay finds the record for one entity on one day
func (r *GormRecordRepository) FindByEntityAndDay(ctx context.Context, tenantID uuid.UUID, entity attendance.EntityRef, day attendance.DayWindow) (*attendance.Record, error) {
	var model models.AttendanceRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("entity_type = ?", entity.Type).
		Where("entity_id = ?", entity.ID).
		Where("date BETWEEN ? AND ?", day.Start, day.End).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRange returns records in the window, sorted by date descending
func (r *GormRecordRepository) FindByRange(ctx context.Context, query attendance.RangeQuery) ([]*attendance.Record, error) {
	q := r.db.WithContext(ctx).Model(&models.AttendanceRecordModel{}).
		Where("tenant_id = ?", query.TenantID).
		Where("date BETWEEN ? AND ?", query.Window.Start, query.Window.End)

	if query.EntityType != nil {
		q = q.Where("entity_type = ?", *query.EntityType)
	}
	if query.EntityID != nil {
		q = q.Where("entity_id = ?", *query.EntityID)
	}

	var recordModels []models.AttendanceRecordModel
	if err := q.Order("date DESC").Order("created_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	return toDomainRecords(recordModels), nil
}

// FindByEntityAndRange returns one entity's records in the window,
// sorted by date descending
func (r *GormRecordRepository) FindByEntityAndRange(ctx context.Context, entity attendance.EntityRef, window attendance.DayWindow) ([]*attendance.Record, error) {
	var recordModels []models.AttendanceRecordModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ?", entity.Type).
		Where("entity_id = ?", entity.ID).
		Where("date BETWEEN ? AND ?", window.Start, window.End).
		Order("date DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// ReplaceForDay atomically deletes all student rows for the given day
// whose entity ID is in studentIDs, then inserts the replacement records
func (r *GormRecordRepository) ReplaceForDay(ctx context.Context, tenantID uuid.UUID, day attendance.DayWindow, studentIDs []uuid.UUID, records []*attendance.Record) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(studentIDs) > 0 {
			if err := tx.
				Where("tenant_id = ?", tenantID).
				Where("entity_type = ?", attendance.EntityTypeStudent).
				Where("entity_id IN ?", studentIDs).
				Where("date BETWEEN ? AND ?", day.Start, day.End).
				Delete(&models.AttendanceRecordModel{}).Error; err != nil {
				return err
			}
		}
		if len(records) == 0 {
			return nil
		}

		recordModels := make([]models.AttendanceRecordModel, len(records))
		for i, record := range records {
			recordModels[i] = *models.AttendanceRecordModelFromDomain(record)
		}
		return tx.Create(&recordModels).Error
	})
}

// Summarize groups records in the window by (entity id, entity type)
// with per-status counts
func (r *GormRecordRepository) Summarize(ctx context.Context, tenantID uuid.UUID, window attendance.DayWindow, entityIDs []uuid.UUID) ([]attendance.Summary, error) {
	query := r.db.WithContext(ctx).Model(&models.AttendanceRecordModel{}).
		Select(`entity_id,
			entity_type,
			COUNT(*) AS total_days,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS present_days,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS absent_days,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS late_days`,
			attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusLate).
		Where("tenant_id = ?", tenantID).
		Where("date BETWEEN ? AND ?", window.Start, window.End).
		Group("entity_id").Group("entity_type")

	if entityIDs != nil {
		if len(entityIDs) == 0 {
			return []attendance.Summary{}, nil
		}
		query = query.Where("entity_id IN ?", entityIDs)
	}

	var summaries []attendance.Summary
	if err := query.Order("entity_type ASC").Order("entity_id ASC").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []attendance.Summary{}
	}
	return summaries, nil
}

func toDomainRecords(recordModels []models.AttendanceRecordModel) []*attendance.Record {
	records := make([]*attendance.Record, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToDomain()
	}
	return records
}
