package roster

import (
	"context"
	"time"

	"github.com/clubops/backend/internal/domain/roster"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StudentService handles student management for a tenant
type StudentService struct {
	studentRepo roster.StudentRepository
	sportRepo   roster.SportRepository
	batchRepo   roster.BatchRepository
	logger      *zap.Logger
}

// NewStudentService creates a new student service
func NewStudentService(
	studentRepo roster.StudentRepository,
	sportRepo roster.SportRepository,
	batchRepo roster.BatchRepository,
	logger *zap.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		sportRepo:   sportRepo,
		batchRepo:   batchRepo,
		logger:      logger,
	}
}

// CreateStudentInput contains the data needed to create a student
type CreateStudentInput struct {
	TenantID    uuid.UUID
	Name        string
	Email       string
	Contact     string
	DateOfBirth *time.Time
	JoiningDate time.Time
	SportIDs    []uuid.UUID
}

// UpdateStudentInput contains the data needed to update a student
type UpdateStudentInput struct {
	TenantID uuid.UUID
	ID       uuid.UUID
	Name     string
	Email    string
	Contact  string
}

// Create creates a new student, optionally linked to sports of the tenant
func (s *StudentService) Create(ctx context.Context, input CreateStudentInput) (*StudentDTO, error) {
	s.logger.Info("Creating student",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("name", input.Name))

	student, err := roster.NewStudent(input.TenantID, input.Name, input.Email, input.Contact, input.JoiningDate)
	if err != nil {
		return nil, err
	}

	if input.DateOfBirth != nil {
		if err := student.SetDateOfBirth(*input.DateOfBirth); err != nil {
			return nil, err
		}
	}

	for _, sportID := range input.SportIDs {
		if _, err := s.findTenantSport(ctx, input.TenantID, sportID); err != nil {
			return nil, err
		}
		if err := student.AddSport(sportID); err != nil {
			return nil, err
		}
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		s.logger.Error("Failed to create student", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create student")
	}

	s.logger.Info("Student created",
		zap.String("student_id", student.ID.String()),
		zap.String("name", student.Name))

	dto := toStudentDTO(student)
	return &dto, nil
}

// GetByID retrieves a student within the tenant
func (s *StudentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*StudentDTO, error) {
	student, err := s.findTenantStudent(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	dto := toStudentDTO(student)
	return &dto, nil
}

// List retrieves the tenant's students matching the filter
func (s *StudentService) List(ctx context.Context, tenantID uuid.UUID, filter roster.StudentFilter) (*StudentListResult, error) {
	students, total, err := s.studentRepo.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list students", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list students")
	}

	dtos := make([]StudentDTO, len(students))
	for i, student := range students {
		dtos[i] = toStudentDTO(student)
	}

	return &StudentListResult{
		Students:   dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
		TotalPages: totalPages(total, filter.Limit()),
	}, nil
}

// Update updates a student's basic information
func (s *StudentService) Update(ctx context.Context, input UpdateStudentInput) (*StudentDTO, error) {
	student, err := s.findTenantStudent(ctx, input.TenantID, input.ID)
	if err != nil {
		return nil, err
	}

	if err := student.Update(input.Name, input.Email, input.Contact); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		s.logger.Error("Failed to update student", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update student")
	}

	dto := toStudentDTO(student)
	return &dto, nil
}

// SetDateOfBirth sets the student's date of birth
func (s *StudentService) SetDateOfBirth(ctx context.Context, tenantID, id uuid.UUID, dob time.Time) error {
	student, err := s.findTenantStudent(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := student.SetDateOfBirth(dob); err != nil {
		return err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		s.logger.Error("Failed to update student date of birth", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update student")
	}

	return nil
}

// SetFeeStatus updates the student's fee payment status
func (s *StudentService) SetFeeStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (*StudentDTO, error) {
	student, err := s.findTenantStudent(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := student.SetFeeStatus(roster.FeeStatus(status)); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		s.logger.Error("Failed to update student fee status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update fee status")
	}

	s.logger.Info("Student fee status updated",
		zap.String("student_id", student.ID.String()),
		zap.String("fee_status", status))

	dto := toStudentDTO(student)
	return &dto, nil
}

// AddSport links the student to a sport of the same tenant
func (s *StudentService) AddSport(ctx context.Context, tenantID, studentID, sportID uuid.UUID) (*StudentDTO, error) {
	student, err := s.findTenantStudent(ctx, tenantID, studentID)
	if err != nil {
		return nil, err
	}

	sport, err := s.findTenantSport(ctx, tenantID, sportID)
	if err != nil {
		return nil, err
	}

	if err := student.AddSport(sport.ID); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		s.logger.Error("Failed to link student to sport", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to link student to sport")
	}

	dto := toStudentDTO(student)
	return &dto, nil
}

// RemoveSport unlinks the student from a sport
func (s *StudentService) RemoveSport(ctx context.Context, tenantID, studentID, sportID uuid.UUID) (*StudentDTO, error) {
	student, err := s.findTenantStudent(ctx, tenantID, studentID)
	if err != nil {
		return nil, err
	}

	if err := student.RemoveSport(sportID); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		s.logger.Error("Failed to unlink student from sport", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to unlink student from sport")
	}

	dto := toStudentDTO(student)
	return &dto, nil
}

// Delete deletes a student, unenrolling them from their batch first
func (s *StudentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	student, err := s.findTenantStudent(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if student.BatchID != nil {
		if batch, err := s.batchRepo.FindByID(ctx, *student.BatchID); err == nil {
			if err := batch.RemoveStudent(student.ID); err == nil {
				if err := s.batchRepo.Update(ctx, batch); err != nil {
					s.logger.Error("Failed to unenroll student before delete", zap.Error(err))
				}
			}
		}
	}

	if err := s.studentRepo.Delete(ctx, student.ID); err != nil {
		s.logger.Error("Failed to delete student", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete student")
	}

	s.logger.Info("Student deleted", zap.String("student_id", id.String()))

	return nil
}

// findTenantStudent loads a student and verifies it belongs to the tenant.
// A student from another tenant is reported as not found, not forbidden.
func (s *StudentService) findTenantStudent(ctx context.Context, tenantID, id uuid.UUID) (*roster.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
	}
	if !student.BelongsToTenant(tenantID) {
		return nil, shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
	}
	return student, nil
}

func (s *StudentService) findTenantSport(ctx context.Context, tenantID, id uuid.UUID) (*roster.Sport, error) {
	sport, err := s.sportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("SPORT_NOT_FOUND", "Sport not found")
	}
	if !sport.BelongsToTenant(tenantID) {
		return nil, shared.NewDomainError("SPORT_NOT_FOUND", "Sport not found")
	}
	return sport, nil
}

func toStudentDTO(student *roster.Student) StudentDTO {
	return StudentDTO{
		ID:          student.ID,
		TenantID:    student.TenantID,
		Name:        student.Name,
		Email:       student.Email,
		Contact:     student.Contact,
		DateOfBirth: student.DateOfBirth,
		JoiningDate: student.JoiningDate,
		SportIDs:    student.SportIDs,
		FeeStatus:   string(student.FeeStatus),
		BatchID:     student.BatchID,
		CreatedAt:   student.CreatedAt,
		UpdatedAt:   student.UpdatedAt,
	}
}
