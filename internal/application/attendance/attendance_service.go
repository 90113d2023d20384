package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/clubops/backend/internal/domain/attendance"
	"github.com/clubops/backend/internal/domain/identity"
	"github.com/clubops/backend/internal/domain/roster"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/clubops/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// tenantTimezoneTTL bounds how long a cached tenant timezone is trusted.
// A tenant timezone change takes effect within this window at the latest.
const tenantTimezoneTTL = time.Hour

// AttendanceService enforces the one-record-per-entity-per-day ledger
// invariant and performs all ledger reads, writes, and aggregations
type AttendanceService struct {
	recordRepo  attendance.RecordRepository
	tenantRepo  identity.TenantRepository
	userRepo    identity.UserRepository
	studentRepo roster.StudentRepository
	batchRepo   roster.BatchRepository
	locations   cache.TenantLocationCache
	defaultLoc  *time.Location
	logger      *zap.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	recordRepo attendance.RecordRepository,
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	studentRepo roster.StudentRepository,
	batchRepo roster.BatchRepository,
	locations cache.TenantLocationCache,
	defaultLoc *time.Location,
	logger *zap.Logger,
) *AttendanceService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &AttendanceService{
		recordRepo:  recordRepo,
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
		studentRepo: studentRepo,
		batchRepo:   batchRepo,
		locations:   locations,
		defaultLoc:  defaultLoc,
		logger:      logger,
	}
}

// Mark creates one attendance record for the day window containing the
// given date. The per-day unique constraint, not a prior read, enforces
// the invariant; a violation is returned as a conflict carrying the
// already-existing record so the caller can display it without a second
// round trip.
func (s *AttendanceService) Mark(ctx context.Context, input MarkInput) (*RecordDTO, error) {
	entity, err := attendance.NewEntityRef(input.EntityType, input.EntityID)
	if err != nil {
		return nil, err
	}

	if err := attendance.AuthorizeWrite(input.Role, entity.Type); err != nil {
		return nil, err
	}

	if err := s.verifyEntity(ctx, input.TenantID, entity); err != nil {
		return nil, err
	}

	status, err := attendance.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	day := attendance.NewDayWindow(input.Date, s.resolveLocation(ctx, input.TenantID))

	record, err := attendance.NewRecord(input.TenantID, entity, day, status)
	if err != nil {
		return nil, err
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, s.markConflict(ctx, input.TenantID, entity, day)
		}
		s.logger.Error("Failed to create attendance record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to mark attendance")
	}

	s.logger.Info("Attendance marked",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("entity_type", string(entity.Type)),
		zap.String("entity_id", entity.ID.String()),
		zap.String("day", day.ISODay()),
		zap.String("status", string(status)))

	dtos, err := s.resolve(ctx, input.TenantID, []*attendance.Record{record})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// markConflict loads and resolves the record that won the day, so the
// duplicate-mark error carries it as auxiliary payload
func (s *AttendanceService) markConflict(ctx context.Context, tenantID uuid.UUID, entity attendance.EntityRef, day attendance.DayWindow) error {
	conflict := shared.NewDomainError("ALREADY_MARKED", "Attendance already marked for this date")

	existing, err := s.recordRepo.FindByEntityAndDay(ctx, tenantID, entity, day)
	if err != nil {
		s.logger.Warn("Failed to load conflicting attendance record", zap.Error(err))
		return conflict
	}

	dtos, err := s.resolve(ctx, tenantID, []*attendance.Record{existing})
	if err != nil {
		return conflict
	}
	return conflict.WithDetails(dtos[0])
}

// BulkMarkStudents overwrites a batch's student attendance for one day:
// existing rows for the submitted students are replaced wholesale, which
// makes the operation idempotent per call and tolerant of resubmission
// with corrections.
func (s *AttendanceService) BulkMarkStudents(ctx context.Context, input BulkMarkInput) ([]RecordDTO, error) {
	if err := attendance.AuthorizeWrite(input.Role, attendance.EntityTypeStudent); err != nil {
		return nil, err
	}

	if len(input.Entries) == 0 {
		return nil, shared.NewDomainError("INVALID_ENTRIES", "Entries cannot be empty")
	}

	batch, err := s.batchRepo.FindByID(ctx, input.BatchID)
	if err != nil || !batch.BelongsToTenant(input.TenantID) {
		return nil, shared.NewDomainError("BATCH_NOT_FOUND", "Batch not found")
	}

	// Validate the whole submission before touching the ledger
	studentIDs := make([]uuid.UUID, len(input.Entries))
	statuses := make([]attendance.Status, len(input.Entries))
	for i, entry := range input.Entries {
		if entry.StudentID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ENTITY_ID", "Entity ID cannot be empty")
		}
		status, err := attendance.ParseStatus(entry.Status)
		if err != nil {
			return nil, err
		}
		studentIDs[i] = entry.StudentID
		statuses[i] = status
	}

	students, err := s.studentRepo.FindByIDs(ctx, studentIDs)
	if err != nil {
		s.logger.Error("Failed to load students for bulk mark", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to mark attendance")
	}
	known := make(map[uuid.UUID]bool, len(students))
	for _, student := range students {
		if student.BelongsToTenant(input.TenantID) {
			known[student.ID] = true
		}
	}
	for _, id := range studentIDs {
		if !known[id] {
			return nil, shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
		}
	}

	day := attendance.NewDayWindow(input.Date, s.resolveLocation(ctx, input.TenantID))

	records := make([]*attendance.Record, len(input.Entries))
	for i := range input.Entries {
		record, err := attendance.NewRecord(input.TenantID, attendance.StudentRef(studentIDs[i]), day, statuses[i])
		if err != nil {
			return nil, err
		}
		records[i] = record
	}

	if err := s.recordRepo.ReplaceForDay(ctx, input.TenantID, day, studentIDs, records); err != nil {
		s.logger.Error("Failed to replace attendance for day", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to mark attendance")
	}

	s.logger.Info("Bulk attendance marked",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("batch_id", input.BatchID.String()),
		zap.String("day", day.ISODay()),
		zap.Int("count", len(records)))

	return s.resolve(ctx, input.TenantID, records)
}

// UpdateStatus overwrites one record's status. The write guard is
// re-applied against the stored record's entity type, so a coach cannot
// escalate by editing a coach row they know the id of.
func (s *AttendanceService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*RecordDTO, error) {
	record, err := s.recordRepo.FindByID(ctx, input.RecordID)
	if err != nil {
		return nil, shared.NewDomainError("RECORD_NOT_FOUND", "Attendance record not found")
	}
	if !record.BelongsToTenant(input.TenantID) {
		return nil, shared.NewDomainError("RECORD_NOT_FOUND", "Attendance record not found")
	}

	if err := attendance.AuthorizeWrite(input.Role, record.Entity.Type); err != nil {
		return nil, err
	}

	if err := record.UpdateStatus(attendance.Status(input.Status)); err != nil {
		return nil, err
	}

	if err := s.recordRepo.Update(ctx, record); err != nil {
		s.logger.Error("Failed to update attendance record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update attendance")
	}

	s.logger.Info("Attendance status updated",
		zap.String("record_id", record.ID.String()),
		zap.String("status", input.Status))

	dtos, err := s.resolve(ctx, input.TenantID, []*attendance.Record{record})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// Today returns the current day's ledger slice. For club admins it first
// defaults every unmarked coach of the tenant to PRESENT for today only;
// past days are never backfilled.
func (s *AttendanceService) Today(ctx context.Context, tenantID uuid.UUID, role identity.Role) (*TodayResult, error) {
	loc := s.resolveLocation(ctx, tenantID)
	day := attendance.NewDayWindow(time.Now(), loc)

	if role == identity.RoleClubAdmin {
		if err := s.autoPresentCoaches(ctx, tenantID, day); err != nil {
			s.logger.Error("Failed to default coaches to present", zap.Error(err))
		}
	}

	records, err := s.recordRepo.FindByRange(ctx, attendance.RangeQuery{
		TenantID:   tenantID,
		EntityType: attendance.NarrowReadFilter(role, nil),
		Window:     day,
	})
	if err != nil {
		s.logger.Error("Failed to read today's attendance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to read attendance")
	}

	dtos, err := s.resolve(ctx, tenantID, records)
	if err != nil {
		return nil, err
	}

	return &TodayResult{
		Day:     day.ISODay(),
		Count:   len(dtos),
		Records: dtos,
	}, nil
}

// autoPresentCoaches inserts a PRESENT row for every coach of the tenant
// who has none for the day. Races with concurrent marks are absorbed by
// the duplicate-skipping insert.
func (s *AttendanceService) autoPresentCoaches(ctx context.Context, tenantID uuid.UUID, day attendance.DayWindow) error {
	coaches, err := s.userRepo.FindCoachesByTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	if len(coaches) == 0 {
		return nil
	}

	coachType := attendance.EntityTypeCoach
	existing, err := s.recordRepo.FindByRange(ctx, attendance.RangeQuery{
		TenantID:   tenantID,
		EntityType: &coachType,
		Window:     day,
	})
	if err != nil {
		return err
	}

	marked := make(map[uuid.UUID]bool, len(existing))
	for _, record := range existing {
		marked[record.Entity.ID] = true
	}

	var defaults []*attendance.Record
	for _, coach := range coaches {
		if marked[coach.ID] {
			continue
		}
		record, err := attendance.NewRecord(tenantID, attendance.CoachRef(coach.ID), day, attendance.StatusPresent)
		if err != nil {
			return err
		}
		defaults = append(defaults, record)
	}
	if len(defaults) == 0 {
		return nil
	}

	return s.recordRepo.CreateIgnoringDuplicates(ctx, defaults)
}

// ByDateRange returns the tenant's records over an inclusive day range,
// newest first. A coach caller is silently narrowed to student rows.
func (s *AttendanceService) ByDateRange(ctx context.Context, input RangeInput) ([]RecordDTO, error) {
	var requested *attendance.EntityType
	if input.EntityType != nil {
		parsed, err := attendance.ParseEntityType(*input.EntityType)
		if err != nil {
			return nil, err
		}
		requested = &parsed
	}

	loc := s.resolveLocation(ctx, input.TenantID)
	window, err := attendance.RangeWindow(input.StartDate, input.EndDate, loc)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FindByRange(ctx, attendance.RangeQuery{
		TenantID:   input.TenantID,
		EntityType: attendance.NarrowReadFilter(input.Role, requested),
		EntityID:   input.EntityID,
		Window:     window,
	})
	if err != nil {
		s.logger.Error("Failed to read attendance range", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to read attendance")
	}

	return s.resolve(ctx, input.TenantID, records)
}

// MonthlySummary groups one month's records by entity with per-status
// counts. The optional batch filter resolves the batch's student id set
// first; attendance rows carry no batch reference of their own.
func (s *AttendanceService) MonthlySummary(ctx context.Context, input MonthlySummaryInput) (*MonthlySummaryResult, error) {
	loc := s.resolveLocation(ctx, input.TenantID)
	window, err := attendance.MonthWindow(input.Year, input.Month, loc)
	if err != nil {
		return nil, err
	}

	var entityIDs []uuid.UUID
	if input.BatchID != nil {
		batch, err := s.batchRepo.FindByID(ctx, *input.BatchID)
		if err != nil || !batch.BelongsToTenant(input.TenantID) {
			return nil, shared.NewDomainError("BATCH_NOT_FOUND", "Batch not found")
		}
		entityIDs, err = s.batchRepo.StudentIDs(ctx, batch.ID)
		if err != nil {
			s.logger.Error("Failed to resolve batch students", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build summary")
		}
		if len(entityIDs) == 0 {
			return &MonthlySummaryResult{Month: input.Month, Year: input.Year, Summaries: []attendance.Summary{}}, nil
		}
	}

	summaries, err := s.recordRepo.Summarize(ctx, input.TenantID, window, entityIDs)
	if err != nil {
		s.logger.Error("Failed to summarize attendance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build summary")
	}

	// Coaches only ever see student aggregates
	if narrowed := attendance.NarrowReadFilter(input.Role, nil); narrowed != nil {
		filtered := summaries[:0]
		for _, summary := range summaries {
			if summary.EntityType == *narrowed {
				filtered = append(filtered, summary)
			}
		}
		summaries = filtered
	}

	return &MonthlySummaryResult{
		Month:     input.Month,
		Year:      input.Year,
		Summaries: summaries,
	}, nil
}

// EntityReport returns one entity's records over a window plus their
// aggregate, with the attendance percentage rounded to two decimals and
// zero when there are no records at all.
func (s *AttendanceService) EntityReport(ctx context.Context, input EntityReportInput) (*EntityReportResult, error) {
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, shared.NewDomainError("MISSING_PARAMETERS", "Start and end dates are required")
	}

	entity, err := attendance.NewEntityRef(input.EntityType, input.EntityID)
	if err != nil {
		return nil, err
	}
	if narrowed := attendance.NarrowReadFilter(input.Role, &entity.Type); narrowed != nil {
		entity.Type = *narrowed
	}

	loc := s.resolveLocation(ctx, input.TenantID)
	window, err := attendance.RangeWindow(input.StartDate, input.EndDate, loc)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FindByEntityAndRange(ctx, entity, window)
	if err != nil {
		s.logger.Error("Failed to read entity attendance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to read attendance")
	}

	scoped := records[:0]
	for _, record := range records {
		if record.BelongsToTenant(input.TenantID) {
			scoped = append(scoped, record)
		}
	}
	records = scoped

	summary := ReportSummary{TotalDays: len(records), AttendancePercentage: decimal.Zero}
	for _, record := range records {
		switch record.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusLate:
			summary.LateDays++
		}
	}
	if summary.TotalDays > 0 {
		summary.AttendancePercentage = decimal.NewFromInt(int64(summary.PresentDays)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(summary.TotalDays))).
			Round(2)
	}

	dtos, err := s.resolve(ctx, input.TenantID, records)
	if err != nil {
		return nil, err
	}

	return &EntityReportResult{Records: dtos, Summary: summary}, nil
}

// resolveLocation returns the tenant's day-boundary timezone,
// cache-first. Failures fall back to the configured default rather than
// failing the operation; a day boundary in the wrong zone is recoverable,
// a rejected mark is not.
func (s *AttendanceService) resolveLocation(ctx context.Context, tenantID uuid.UUID) *time.Location {
	if s.locations != nil {
		if name, ok, err := s.locations.Get(ctx, tenantID); err == nil && ok {
			if loc, err := time.LoadLocation(name); err == nil {
				return loc
			}
		}
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		s.logger.Warn("Falling back to default timezone",
			zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return s.defaultLoc
	}

	if s.locations != nil {
		if err := s.locations.Set(ctx, tenantID, tenant.Timezone, tenantTimezoneTTL); err != nil {
			s.logger.Warn("Failed to cache tenant timezone", zap.Error(err))
		}
	}

	return tenant.Location()
}

// verifyEntity checks the mark subject exists inside the tenant. A
// subject from another tenant reads as not found, not forbidden.
func (s *AttendanceService) verifyEntity(ctx context.Context, tenantID uuid.UUID, entity attendance.EntityRef) error {
	switch entity.Type {
	case attendance.EntityTypeStudent:
		student, err := s.studentRepo.FindByID(ctx, entity.ID)
		if err != nil || !student.BelongsToTenant(tenantID) {
			return shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
		}
	case attendance.EntityTypeCoach:
		coach, err := s.userRepo.FindByID(ctx, entity.ID)
		if err != nil || !coach.BelongsToTenant(tenantID) || !coach.IsCoach() {
			return shared.NewDomainError("COACH_NOT_FOUND", "Coach not found")
		}
	}
	return nil
}

// resolve expands tenant and entity references into display summaries.
// Entities deleted since the record was written resolve to "Unknown"
// rather than dropping the row.
func (s *AttendanceService) resolve(ctx context.Context, tenantID uuid.UUID, records []*attendance.Record) ([]RecordDTO, error) {
	tenantName := ""
	if tenant, err := s.tenantRepo.FindByID(ctx, tenantID); err == nil {
		tenantName = tenant.ClubName
	}

	var studentIDs []uuid.UUID
	needCoaches := false
	seen := make(map[uuid.UUID]bool)
	for _, record := range records {
		if record.Entity.IsStudent() {
			if !seen[record.Entity.ID] {
				seen[record.Entity.ID] = true
				studentIDs = append(studentIDs, record.Entity.ID)
			}
		} else {
			needCoaches = true
		}
	}

	students := make(map[uuid.UUID]*roster.Student)
	if len(studentIDs) > 0 {
		found, err := s.studentRepo.FindByIDs(ctx, studentIDs)
		if err != nil {
			s.logger.Error("Failed to resolve students", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve attendance records")
		}
		for _, student := range found {
			students[student.ID] = student
		}
	}

	coaches := make(map[uuid.UUID]*identity.User)
	if needCoaches {
		found, err := s.userRepo.FindCoachesByTenant(ctx, tenantID)
		if err != nil {
			s.logger.Error("Failed to resolve coaches", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve attendance records")
		}
		for _, coach := range found {
			coaches[coach.ID] = coach
		}
	}

	dtos := make([]RecordDTO, len(records))
	for i, record := range records {
		summary := EntitySummary{
			ID:   record.Entity.ID,
			Type: string(record.Entity.Type),
			Name: "Unknown",
		}
		if record.Entity.IsStudent() {
			if student, ok := students[record.Entity.ID]; ok {
				summary.Name = student.Name
				summary.Email = student.Email
				summary.Contact = student.Contact
			}
		} else if coach, ok := coaches[record.Entity.ID]; ok {
			summary.Name = coach.GetFullNameOrUsername()
			summary.Salary = coach.Salary
		}

		dtos[i] = RecordDTO{
			ID:         record.ID,
			TenantID:   record.TenantID,
			TenantName: tenantName,
			Entity:     summary,
			Date:       record.ISODay(),
			Status:     string(record.Status),
			CreatedAt:  record.CreatedAt,
			UpdatedAt:  record.UpdatedAt,
		}
	}

	return dtos, nil
}
