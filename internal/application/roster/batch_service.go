package roster

import (
	"context"

	"github.com/clubops/backend/internal/domain/identity"
	"github.com/clubops/backend/internal/domain/roster"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BatchService handles batch management for a tenant, including coach
// assignment and student enrollment
type BatchService struct {
	batchRepo   roster.BatchRepository
	sportRepo   roster.SportRepository
	studentRepo roster.StudentRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewBatchService creates a new batch service
func NewBatchService(
	batchRepo roster.BatchRepository,
	sportRepo roster.SportRepository,
	studentRepo roster.StudentRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *BatchService {
	return &BatchService{
		batchRepo:   batchRepo,
		sportRepo:   sportRepo,
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateBatchInput contains the data needed to create a batch
type CreateBatchInput struct {
	TenantID  uuid.UUID
	SportID   uuid.UUID
	Name      string
	Capacity  int
	StartTime string
	EndTime   string
	Schedule  []string
}

// UpdateBatchInput contains the data needed to update a batch
type UpdateBatchInput struct {
	TenantID  uuid.UUID
	ID        uuid.UUID
	Name      string
	Capacity  int
	StartTime string
	EndTime   string
	Schedule  []string
}

// Create creates a new batch referencing an active sport of the tenant
func (s *BatchService) Create(ctx context.Context, input CreateBatchInput) (*BatchDTO, error) {
	s.logger.Info("Creating batch",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("name", input.Name),
		zap.String("sport_id", input.SportID.String()))

	sport, err := s.findTenantSport(ctx, input.TenantID, input.SportID)
	if err != nil {
		return nil, err
	}
	if !sport.IsActive() {
		return nil, shared.NewDomainError("SPORT_INACTIVE", "Cannot create a batch for an inactive sport")
	}

	batch, err := roster.NewBatch(input.TenantID, sport.ID, input.Name, input.Capacity,
		input.StartTime, input.EndTime, toWeekdays(input.Schedule))
	if err != nil {
		return nil, err
	}

	if err := s.batchRepo.Create(ctx, batch); err != nil {
		s.logger.Error("Failed to create batch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create batch")
	}

	s.logger.Info("Batch created",
		zap.String("batch_id", batch.ID.String()),
		zap.String("name", batch.Name))

	dto := toBatchDTO(batch)
	return &dto, nil
}

// GetByID retrieves a batch within the tenant
func (s *BatchService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*BatchDTO, error) {
	batch, err := s.findTenantBatch(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	dto := toBatchDTO(batch)
	return &dto, nil
}

// List retrieves the tenant's batches matching the filter
func (s *BatchService) List(ctx context.Context, tenantID uuid.UUID, filter roster.BatchFilter) (*BatchListResult, error) {
	batches, total, err := s.batchRepo.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list batches", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list batches")
	}

	dtos := make([]BatchDTO, len(batches))
	for i, batch := range batches {
		dtos[i] = toBatchDTO(batch)
	}

	return &BatchListResult{
		Batches:    dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
		TotalPages: totalPages(total, filter.Limit()),
	}, nil
}

// Update updates a batch's settings. Capacity cannot drop below the
// current enrollment.
func (s *BatchService) Update(ctx context.Context, input UpdateBatchInput) (*BatchDTO, error) {
	batch, err := s.findTenantBatch(ctx, input.TenantID, input.ID)
	if err != nil {
		return nil, err
	}

	if err := batch.Update(input.Name, input.Capacity, input.StartTime, input.EndTime, toWeekdays(input.Schedule)); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Update(ctx, batch); err != nil {
		s.logger.Error("Failed to update batch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update batch")
	}

	dto := toBatchDTO(batch)
	return &dto, nil
}

// ChangeSport points the batch at a different sport of the same tenant
func (s *BatchService) ChangeSport(ctx context.Context, tenantID, batchID, sportID uuid.UUID) (*BatchDTO, error) {
	batch, err := s.findTenantBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	sport, err := s.findTenantSport(ctx, tenantID, sportID)
	if err != nil {
		return nil, err
	}

	if err := batch.ChangeSport(sport.ID); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Update(ctx, batch); err != nil {
		s.logger.Error("Failed to change batch sport", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change batch sport")
	}

	dto := toBatchDTO(batch)
	return &dto, nil
}

// AssignCoach assigns a coach of the same tenant to the batch
func (s *BatchService) AssignCoach(ctx context.Context, tenantID, batchID, coachID uuid.UUID) (*BatchDTO, error) {
	batch, err := s.findTenantBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	coach, err := s.userRepo.FindByID(ctx, coachID)
	if err != nil || !coach.BelongsToTenant(tenantID) {
		return nil, shared.NewDomainError("COACH_NOT_FOUND", "Coach not found")
	}
	if !coach.IsCoach() {
		return nil, shared.NewDomainError("NOT_A_COACH", "User is not a coach")
	}

	if err := batch.AssignCoach(coach.ID); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Update(ctx, batch); err != nil {
		s.logger.Error("Failed to assign coach", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to assign coach")
	}

	s.logger.Info("Coach assigned to batch",
		zap.String("batch_id", batch.ID.String()),
		zap.String("coach_id", coach.ID.String()))

	dto := toBatchDTO(batch)
	return &dto, nil
}

// RemoveCoach removes a coach from the batch
func (s *BatchService) RemoveCoach(ctx context.Context, tenantID, batchID, coachID uuid.UUID) (*BatchDTO, error) {
	batch, err := s.findTenantBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	if err := batch.RemoveCoach(coachID); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Update(ctx, batch); err != nil {
		s.logger.Error("Failed to remove coach", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to remove coach")
	}

	dto := toBatchDTO(batch)
	return &dto, nil
}

// AssignStudent enrolls a student of the same tenant into the batch,
// enforcing the batch capacity
func (s *BatchService) AssignStudent(ctx context.Context, tenantID, batchID, studentID uuid.UUID) (*BatchDTO, error) {
	batch, err := s.findTenantBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil || !student.BelongsToTenant(tenantID) {
		return nil, shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
	}

	if err := batch.AssignStudent(student.ID); err != nil {
		return nil, err
	}
	if err := student.AssignToBatch(batch.ID); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Update(ctx, batch); err != nil {
		s.logger.Error("Failed to enroll student", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to enroll student")
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		s.logger.Error("Failed to update student after enrollment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to enroll student")
	}

	s.logger.Info("Student enrolled in batch",
		zap.String("batch_id", batch.ID.String()),
		zap.String("student_id", student.ID.String()))

	dto := toBatchDTO(batch)
	return &dto, nil
}

// RemoveStudent unenrolls a student from the batch
func (s *BatchService) RemoveStudent(ctx context.Context, tenantID, batchID, studentID uuid.UUID) (*BatchDTO, error) {
	batch, err := s.findTenantBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	if err := batch.RemoveStudent(studentID); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Update(ctx, batch); err != nil {
		s.logger.Error("Failed to unenroll student", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to unenroll student")
	}

	// Keep the student's own batch pointer in sync
	if student, err := s.studentRepo.FindByID(ctx, studentID); err == nil {
		if student.BatchID != nil && *student.BatchID == batch.ID {
			student.RemoveFromBatch()
			if err := s.studentRepo.Update(ctx, student); err != nil {
				s.logger.Error("Failed to clear student batch", zap.Error(err))
			}
		}
	}

	dto := toBatchDTO(batch)
	return &dto, nil
}

// Delete deletes a batch. Membership rows are removed with it and
// enrolled students fall back to unassigned.
func (s *BatchService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	batch, err := s.findTenantBatch(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := s.batchRepo.Delete(ctx, batch.ID); err != nil {
		s.logger.Error("Failed to delete batch", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete batch")
	}

	s.logger.Info("Batch deleted", zap.String("batch_id", id.String()))

	return nil
}

// findTenantBatch loads a batch and verifies it belongs to the tenant.
// A batch from another tenant is reported as not found, not forbidden.
func (s *BatchService) findTenantBatch(ctx context.Context, tenantID, id uuid.UUID) (*roster.Batch, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("BATCH_NOT_FOUND", "Batch not found")
	}
	if !batch.BelongsToTenant(tenantID) {
		return nil, shared.NewDomainError("BATCH_NOT_FOUND", "Batch not found")
	}
	return batch, nil
}

func (s *BatchService) findTenantSport(ctx context.Context, tenantID, id uuid.UUID) (*roster.Sport, error) {
	sport, err := s.sportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("SPORT_NOT_FOUND", "Sport not found")
	}
	if !sport.BelongsToTenant(tenantID) {
		return nil, shared.NewDomainError("SPORT_NOT_FOUND", "Sport not found")
	}
	return sport, nil
}

func toWeekdays(schedule []string) []roster.Weekday {
	out := make([]roster.Weekday, len(schedule))
	for i, day := range schedule {
		out[i] = roster.Weekday(day)
	}
	return out
}

func toBatchDTO(batch *roster.Batch) BatchDTO {
	schedule := make([]string, len(batch.Schedule))
	for i, day := range batch.Schedule {
		schedule[i] = string(day)
	}

	return BatchDTO{
		ID:         batch.ID,
		TenantID:   batch.TenantID,
		Name:       batch.Name,
		SportID:    batch.SportID,
		Capacity:   batch.Capacity,
		Enrolled:   len(batch.StudentIDs),
		StartTime:  batch.StartTime,
		EndTime:    batch.EndTime,
		Schedule:   schedule,
		CoachIDs:   batch.CoachIDs,
		StudentIDs: batch.StudentIDs,
		CreatedAt:  batch.CreatedAt,
		UpdatedAt:  batch.UpdatedAt,
	}
}
