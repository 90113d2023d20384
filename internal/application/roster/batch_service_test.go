package roster

import (
	"context"
	"testing"

	"github.com/clubops/backend/internal/domain/identity"
	"github.com/clubops/backend/internal/domain/roster"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBatch(t *testing.T, tenantID, sportID uuid.UUID, capacity int) *roster.Batch {
	t.Helper()
	batch, err := roster.NewBatch(tenantID, sportID, "Morning Batch", capacity,
		"06:00", "07:30", []roster.Weekday{roster.WeekdayMonday, roster.WeekdayWednesday})
	require.NoError(t, err)
	return batch
}

func newBatchService(batchRepo *MockBatchRepository, sportRepo *MockSportRepository, studentRepo *MockStudentRepository, userRepo *MockUserRepository) *BatchService {
	return NewBatchService(batchRepo, sportRepo, studentRepo, userRepo, zap.NewNop())
}

func TestBatchService_Create(t *testing.T) {
	tenantID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	t.Run("creates batch against an active sport", func(t *testing.T) {
		sport := newTestSport(t, tenantID, "Badminton")
		sportRepo := new(MockSportRepository)
		batchRepo := new(MockBatchRepository)
		sportRepo.On("FindByID", mock.Anything, sport.ID).Return(sport, nil)
		batchRepo.On("Create", mock.Anything, mock.AnythingOfType("*roster.Batch")).Return(nil)

		svc := newBatchService(batchRepo, sportRepo, new(MockStudentRepository), new(MockUserRepository))
		dto, err := svc.Create(context.Background(), CreateBatchInput{
			TenantID:  tenantID,
			SportID:   sport.ID,
			Name:      "Morning Batch",
			Capacity:  20,
			StartTime: "06:00",
			EndTime:   "07:30",
			Schedule:  []string{"MON", "WED", "FRI"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Morning Batch", dto.Name)
		assert.Equal(t, sport.ID, dto.SportID)
		assert.Equal(t, 20, dto.Capacity)
		assert.Equal(t, []string{"MON", "WED", "FRI"}, dto.Schedule)
		batchRepo.AssertExpectations(t)
	})

	t.Run("inactive sport is rejected", func(t *testing.T) {
		sport := newTestSport(t, tenantID, "Badminton")
		require.NoError(t, sport.Deactivate())

		sportRepo := new(MockSportRepository)
		sportRepo.On("FindByID", mock.Anything, sport.ID).Return(sport, nil)

		svc := newBatchService(new(MockBatchRepository), sportRepo, new(MockStudentRepository), new(MockUserRepository))
		_, err := svc.Create(context.Background(), CreateBatchInput{
			TenantID:  tenantID,
			SportID:   sport.ID,
			Name:      "Morning Batch",
			Capacity:  20,
			StartTime: "06:00",
			EndTime:   "07:30",
			Schedule:  []string{"MON"},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SPORT_INACTIVE", domainErr.Code)
	})

	t.Run("sport from another tenant reads as not found", func(t *testing.T) {
		otherTenantID := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
		sport := newTestSport(t, otherTenantID, "Badminton")

		sportRepo := new(MockSportRepository)
		sportRepo.On("FindByID", mock.Anything, sport.ID).Return(sport, nil)

		svc := newBatchService(new(MockBatchRepository), sportRepo, new(MockStudentRepository), new(MockUserRepository))
		_, err := svc.Create(context.Background(), CreateBatchInput{
			TenantID:  tenantID,
			SportID:   sport.ID,
			Name:      "Morning Batch",
			Capacity:  20,
			StartTime: "06:00",
			EndTime:   "07:30",
			Schedule:  []string{"MON"},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SPORT_NOT_FOUND", domainErr.Code)
	})

	t.Run("invalid weekday is rejected", func(t *testing.T) {
		sport := newTestSport(t, tenantID, "Badminton")
		sportRepo := new(MockSportRepository)
		sportRepo.On("FindByID", mock.Anything, sport.ID).Return(sport, nil)

		svc := newBatchService(new(MockBatchRepository), sportRepo, new(MockStudentRepository), new(MockUserRepository))
		_, err := svc.Create(context.Background(), CreateBatchInput{
			TenantID:  tenantID,
			SportID:   sport.ID,
			Name:      "Morning Batch",
			Capacity:  20,
			StartTime: "06:00",
			EndTime:   "07:30",
			Schedule:  []string{"FUNDAY"},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SCHEDULE", domainErr.Code)
	})
}

func TestBatchService_Update(t *testing.T) {
	tenantID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	t.Run("capacity below enrollment is rejected", func(t *testing.T) {
		batch := newTestBatch(t, tenantID, uuid.New(), 3)
		require.NoError(t, batch.AssignStudent(uuid.New()))
		require.NoError(t, batch.AssignStudent(uuid.New()))

		batchRepo := new(MockBatchRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), new(MockStudentRepository), new(MockUserRepository))
		_, err := svc.Update(context.Background(), UpdateBatchInput{
			TenantID:  tenantID,
			ID:        batch.ID,
			Name:      "Morning Batch",
			Capacity:  1,
			StartTime: "06:00",
			EndTime:   "07:30",
			Schedule:  []string{"MON"},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CAPACITY_BELOW_ENROLLMENT", domainErr.Code)
	})
}

func TestBatchService_AssignCoach(t *testing.T) {
	tenantID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	t.Run("assigns a coach of the same tenant", func(t *testing.T) {
		batch := newTestBatch(t, tenantID, uuid.New(), 10)
		coach, err := identity.NewCoach(tenantID, "coach1", "Password123", "Coach One")
		require.NoError(t, err)

		batchRepo := new(MockBatchRepository)
		userRepo := new(MockUserRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)
		userRepo.On("FindByID", mock.Anything, coach.ID).Return(coach, nil)
		batchRepo.On("Update", mock.Anything, batch).Return(nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), new(MockStudentRepository), userRepo)
		dto, err := svc.AssignCoach(context.Background(), tenantID, batch.ID, coach.ID)

		require.NoError(t, err)
		assert.Contains(t, dto.CoachIDs, coach.ID)
		batchRepo.AssertExpectations(t)
	})

	t.Run("club admin cannot be assigned as coach", func(t *testing.T) {
		batch := newTestBatch(t, tenantID, uuid.New(), 10)
		admin, err := identity.NewClubAdmin(tenantID, "admin1", "Password123", "Admin")
		require.NoError(t, err)

		batchRepo := new(MockBatchRepository)
		userRepo := new(MockUserRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)
		userRepo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), new(MockStudentRepository), userRepo)
		_, err = svc.AssignCoach(context.Background(), tenantID, batch.ID, admin.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_A_COACH", domainErr.Code)
	})

	t.Run("coach from another tenant reads as not found", func(t *testing.T) {
		otherTenantID := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
		batch := newTestBatch(t, tenantID, uuid.New(), 10)
		coach, err := identity.NewCoach(otherTenantID, "foreign", "Password123", "Foreign Coach")
		require.NoError(t, err)

		batchRepo := new(MockBatchRepository)
		userRepo := new(MockUserRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)
		userRepo.On("FindByID", mock.Anything, coach.ID).Return(coach, nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), new(MockStudentRepository), userRepo)
		_, err = svc.AssignCoach(context.Background(), tenantID, batch.ID, coach.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "COACH_NOT_FOUND", domainErr.Code)
	})

	t.Run("double assignment is rejected", func(t *testing.T) {
		batch := newTestBatch(t, tenantID, uuid.New(), 10)
		coach, err := identity.NewCoach(tenantID, "coach1", "Password123", "Coach One")
		require.NoError(t, err)
		require.NoError(t, batch.AssignCoach(coach.ID))

		batchRepo := new(MockBatchRepository)
		userRepo := new(MockUserRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)
		userRepo.On("FindByID", mock.Anything, coach.ID).Return(coach, nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), new(MockStudentRepository), userRepo)
		_, err = svc.AssignCoach(context.Background(), tenantID, batch.ID, coach.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "COACH_ALREADY_ASSIGNED", domainErr.Code)
	})
}

func TestBatchService_AssignStudent(t *testing.T) {
	tenantID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	t.Run("enrolls a student and syncs the batch pointer", func(t *testing.T) {
		batch := newTestBatch(t, tenantID, uuid.New(), 10)
		student := newTestStudent(t, tenantID, "Asha Rao")

		batchRepo := new(MockBatchRepository)
		studentRepo := new(MockStudentRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)
		studentRepo.On("FindByID", mock.Anything, student.ID).Return(student, nil)
		batchRepo.On("Update", mock.Anything, batch).Return(nil)
		studentRepo.On("Update", mock.Anything, student).Return(nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), studentRepo, new(MockUserRepository))
		dto, err := svc.AssignStudent(context.Background(), tenantID, batch.ID, student.ID)

		require.NoError(t, err)
		assert.Contains(t, dto.StudentIDs, student.ID)
		assert.Equal(t, 1, dto.Enrolled)
		require.NotNil(t, student.BatchID)
		assert.Equal(t, batch.ID, *student.BatchID)
		batchRepo.AssertExpectations(t)
		studentRepo.AssertExpectations(t)
	})

	t.Run("full batch rejects enrollment", func(t *testing.T) {
		batch := newTestBatch(t, tenantID, uuid.New(), 1)
		require.NoError(t, batch.AssignStudent(uuid.New()))
		student := newTestStudent(t, tenantID, "Asha Rao")

		batchRepo := new(MockBatchRepository)
		studentRepo := new(MockStudentRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)
		studentRepo.On("FindByID", mock.Anything, student.ID).Return(student, nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), studentRepo, new(MockUserRepository))
		_, err := svc.AssignStudent(context.Background(), tenantID, batch.ID, student.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "BATCH_FULL", domainErr.Code)
	})

	t.Run("student from another tenant reads as not found", func(t *testing.T) {
		otherTenantID := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
		batch := newTestBatch(t, tenantID, uuid.New(), 10)
		student := newTestStudent(t, otherTenantID, "Foreign Student")

		batchRepo := new(MockBatchRepository)
		studentRepo := new(MockStudentRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)
		studentRepo.On("FindByID", mock.Anything, student.ID).Return(student, nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), studentRepo, new(MockUserRepository))
		_, err := svc.AssignStudent(context.Background(), tenantID, batch.ID, student.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STUDENT_NOT_FOUND", domainErr.Code)
	})
}

func TestBatchService_RemoveStudent(t *testing.T) {
	tenantID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	t.Run("unenrolls and clears the student's batch pointer", func(t *testing.T) {
		batch := newTestBatch(t, tenantID, uuid.New(), 10)
		student := newTestStudent(t, tenantID, "Asha Rao")
		require.NoError(t, batch.AssignStudent(student.ID))
		require.NoError(t, student.AssignToBatch(batch.ID))

		batchRepo := new(MockBatchRepository)
		studentRepo := new(MockStudentRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)
		batchRepo.On("Update", mock.Anything, batch).Return(nil)
		studentRepo.On("FindByID", mock.Anything, student.ID).Return(student, nil)
		studentRepo.On("Update", mock.Anything, student).Return(nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), studentRepo, new(MockUserRepository))
		dto, err := svc.RemoveStudent(context.Background(), tenantID, batch.ID, student.ID)

		require.NoError(t, err)
		assert.NotContains(t, dto.StudentIDs, student.ID)
		assert.Nil(t, student.BatchID)
	})

	t.Run("unenrolled student is rejected", func(t *testing.T) {
		batch := newTestBatch(t, tenantID, uuid.New(), 10)

		batchRepo := new(MockBatchRepository)
		batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)

		svc := newBatchService(batchRepo, new(MockSportRepository), new(MockStudentRepository), new(MockUserRepository))
		_, err := svc.RemoveStudent(context.Background(), tenantID, batch.ID, uuid.New())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STUDENT_NOT_ENROLLED", domainErr.Code)
	})
}
