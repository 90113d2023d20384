package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/clubops/backend/internal/domain/roster"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/clubops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSportRepository implements SportRepository using GORM
type GormSportRepository struct {
	db *gorm.DB
}

// NewGormSportRepository creates a new GormSportRepository
func NewGormSportRepository(db *gorm.DB) *GormSportRepository {
	return &GormSportRepository{db: db}
}

// Create creates a new sport
func (r *GormSportRepository) Create(ctx context.Context, sport *roster.Sport) error {
	model := models.SportModelFromDomain(sport)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing sport
func (r *GormSportRepository) Update(ctx context.Context, sport *roster.Sport) error {
	model := models.SportModelFromDomain(sport)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a sport by ID
func (r *GormSportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SportModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a sport by ID
func (r *GormSportRepository) FindByID(ctx context.Context, id uuid.UUID) (*roster.Sport, error) {
	var model models.SportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a sport by name within a tenant, compared case-insensitively
func (r *GormSportRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*roster.Sport, error) {
	var model models.SportModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant returns all sports of a tenant
func (r *GormSportRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter roster.SportFilter) ([]*roster.Sport, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SportModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.Keyword != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sportModels []models.SportModel
	if err := query.Order("name ASC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&sportModels).Error; err != nil {
		return nil, 0, err
	}

	sports := make([]*roster.Sport, len(sportModels))
	for i := range sportModels {
		sports[i] = sportModels[i].ToDomain()
	}

	return sports, total, nil
}

// ExistsByName checks if a sport with the given name exists within the tenant
func (r *GormSportRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SportModel{}).
		Where("tenant_id = ?", tenantID).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
