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

// GormStudentRepository implements StudentRepository using GORM.
// Sport links live in the student_sports table and are replaced
// wholesale on every save.
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// Create creates a new student including sport links
func (r *GormStudentRepository) Create(ctx context.Context, student *roster.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.StudentModelFromDomain(student)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return replaceSportLinks(tx, student)
	})
}

// Update updates an existing student; sport links are replaced
func (r *GormStudentRepository) Update(ctx context.Context, student *roster.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.StudentModelFromDomain(student)
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return replaceSportLinks(tx, student)
	})
}

// Delete deletes a student and their membership rows
func (r *GormStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.StudentModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Delete(&models.StudentSportModel{}, "student_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BatchStudentModel{}, "student_id = ?", id).Error
	})
}

// FindByID finds a student by ID
func (r *GormStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*roster.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	student := model.ToDomain()
	if err := r.loadSportLinks(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// FindByIDs finds multiple students by their IDs
func (r *GormStudentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*roster.Student, error) {
	if len(ids) == 0 {
		return []*roster.Student{}, nil
	}

	var studentModels []models.StudentModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&studentModels).Error; err != nil {
		return nil, err
	}

	students := make([]*roster.Student, len(studentModels))
	for i := range studentModels {
		student := studentModels[i].ToDomain()
		if err := r.loadSportLinks(ctx, student); err != nil {
			return nil, err
		}
		students[i] = student
	}

	return students, nil
}

// FindByTenant returns all students of a tenant
func (r *GormStudentRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter roster.StudentFilter) ([]*roster.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StudentModel{}).
		Where("students.tenant_id = ?", tenantID)

	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("students.name ILIKE ? OR students.email ILIKE ? OR students.contact ILIKE ?", keyword, keyword, keyword)
	}
	if filter.BatchID != nil {
		query = query.Where("students.batch_id = ?", *filter.BatchID)
	}
	if filter.FeeStatus != nil {
		query = query.Where("students.fee_status = ?", *filter.FeeStatus)
	}
	if filter.SportID != nil {
		query = query.Joins("JOIN student_sports ON student_sports.student_id = students.id").
			Where("student_sports.sport_id = ?", *filter.SportID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var studentModels []models.StudentModel
	if err := query.Order("students.name ASC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&studentModels).Error; err != nil {
		return nil, 0, err
	}

	students := make([]*roster.Student, len(studentModels))
	for i := range studentModels {
		student := studentModels[i].ToDomain()
		if err := r.loadSportLinks(ctx, student); err != nil {
			return nil, 0, err
		}
		students[i] = student
	}

	return students, total, nil
}

func (r *GormStudentRepository) loadSportLinks(ctx context.Context, student *roster.Student) error {
	var sportIDs []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.StudentSportModel{}).
		Where("student_id = ?", student.ID).
		Order("created_at ASC").
		Pluck("sport_id", &sportIDs).Error; err != nil {
		return err
	}
	if sportIDs == nil {
		sportIDs = make([]uuid.UUID, 0)
	}
	student.SportIDs = sportIDs
	return nil
}

func replaceSportLinks(tx *gorm.DB, student *roster.Student) error {
	if err := tx.Delete(&models.StudentSportModel{}, "student_id = ?", student.ID).Error; err != nil {
		return err
	}
	if len(student.SportIDs) == 0 {
		return nil
	}

	now := time.Now()
	links := make([]models.StudentSportModel, len(student.SportIDs))
	for i, sportID := range student.SportIDs {
		links[i] = models.StudentSportModel{
			StudentID: student.ID,
			SportID:   sportID,
			TenantID:  student.TenantID,
			CreatedAt: now,
		}
	}
	return tx.Create(&links).Error
}
