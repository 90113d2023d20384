package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/clubops/backend/internal/domain/roster"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/clubops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM.
// Coach and student memberships are stored in their own tables and
// replaced wholesale on every save, so the domain slices are always
// the source of truth.
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// Create creates a new batch including its membership rows
func (r *GormBatchRepository) Create(ctx context.Context, batch *roster.Batch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.BatchModelFromDomain(batch)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return replaceMemberships(tx, batch)
	})
}

// Update updates a batch; membership rows are replaced
func (r *GormBatchRepository) Update(ctx context.Context, batch *roster.Batch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.BatchModelFromDomain(batch)
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return replaceMemberships(tx, batch)
	})
}

// Delete deletes a batch and its membership rows
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.BatchModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Delete(&models.BatchCoachModel{}, "batch_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BatchStudentModel{}, "batch_id = ?", id).Error
	})
}

// FindByID finds a batch by ID with memberships loaded
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*roster.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	batch := model.ToDomain()
	if err := r.loadMemberships(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// FindByTenant returns all batches of a tenant
func (r *GormBatchRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter roster.BatchFilter) ([]*roster.Batch, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BatchModel{}).
		Where("batches.tenant_id = ?", tenantID)

	if filter.Keyword != "" {
		query = query.Where("batches.name ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.SportID != nil {
		query = query.Where("batches.sport_id = ?", *filter.SportID)
	}
	if filter.CoachID != nil {
		query = query.Joins("JOIN batch_coaches ON batch_coaches.batch_id = batches.id").
			Where("batch_coaches.coach_id = ?", *filter.CoachID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var batchModels []models.BatchModel
	if err := query.Order("batches.created_at DESC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&batchModels).Error; err != nil {
		return nil, 0, err
	}

	batches := make([]*roster.Batch, len(batchModels))
	for i := range batchModels {
		batch := batchModels[i].ToDomain()
		if err := r.loadMemberships(ctx, batch); err != nil {
			return nil, 0, err
		}
		batches[i] = batch
	}

	return batches, total, nil
}

// CountBySport counts batches referencing a sport
func (r *GormBatchRepository) CountBySport(ctx context.Context, sportID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BatchModel{}).
		Where("sport_id = ?", sportID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// StudentIDs returns the IDs of all students enrolled in the batch
func (r *GormBatchRepository) StudentIDs(ctx context.Context, batchID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.BatchStudentModel{}).
		Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormBatchRepository) loadMemberships(ctx context.Context, batch *roster.Batch) error {
	var coachIDs []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.BatchCoachModel{}).
		Where("batch_id = ?", batch.ID).
		Order("created_at ASC").
		Pluck("coach_id", &coachIDs).Error; err != nil {
		return err
	}

	var studentIDs []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.BatchStudentModel{}).
		Where("batch_id = ?", batch.ID).
		Order("created_at ASC").
		Pluck("student_id", &studentIDs).Error; err != nil {
		return err
	}

	if coachIDs == nil {
		coachIDs = make([]uuid.UUID, 0)
	}
	if studentIDs == nil {
		studentIDs = make([]uuid.UUID, 0)
	}
	batch.CoachIDs = coachIDs
	batch.StudentIDs = studentIDs
	return nil
}

func replaceMemberships(tx *gorm.DB, batch *roster.Batch) error {
	if err := tx.Delete(&models.BatchCoachModel{}, "batch_id = ?", batch.ID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.BatchStudentModel{}, "batch_id = ?", batch.ID).Error; err != nil {
		return err
	}

	now := time.Now()
	if len(batch.CoachIDs) > 0 {
		coaches := make([]models.BatchCoachModel, len(batch.CoachIDs))
		for i, coachID := range batch.CoachIDs {
			coaches[i] = models.BatchCoachModel{
				BatchID:   batch.ID,
				CoachID:   coachID,
				TenantID:  batch.TenantID,
				CreatedAt: now,
			}
		}
		if err := tx.Create(&coaches).Error; err != nil {
			return err
		}
	}
	if len(batch.StudentIDs) > 0 {
		students := make([]models.BatchStudentModel, len(batch.StudentIDs))
		for i, studentID := range batch.StudentIDs {
			students[i] = models.BatchStudentModel{
				BatchID:   batch.ID,
				StudentID: studentID,
				TenantID:  batch.TenantID,
				CreatedAt: now,
			}
		}
		if err := tx.Create(&students).Error; err != nil {
			return err
		}
	}
	return nil
}
