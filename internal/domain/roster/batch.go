package roster

import (
	"regexp"
	"strings"

	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Weekday represents a weekday code a batch runs on
type Weekday string

const (
	WeekdayMonday    Weekday = "MON"
	WeekdayTuesday   Weekday = "TUE"
	WeekdayWednesday Weekday = "WED"
	WeekdayThursday  Weekday = "THU"
	WeekdayFriday    Weekday = "FRI"
	WeekdaySaturday  Weekday = "SAT"
	WeekdaySunday    Weekday = "SUN"
)

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Batch represents a training batch: a recurring session of one sport
// with assigned coaches and enrolled students.
type Batch struct {
	shared.TenantAggregateRoot
	Name       string
	SportID    uuid.UUID
	Capacity   int
	StartTime  string // "HH:MM"
	EndTime    string // "HH:MM"
	Schedule   []Weekday
	CoachIDs   []uuid.UUID // loaded by the repository from the membership table
	StudentIDs []uuid.UUID // loaded by the repository from the membership table
}

// NewBatch creates a new batch for a tenant
func NewBatch(tenantID, sportID uuid.UUID, name string, capacity int, startTime, endTime string, schedule []Weekday) (*Batch, error) {
	if err := validateBatchName(name); err != nil {
		return nil, err
	}
	if sportID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SPORT_ID", "Sport ID cannot be empty")
	}
	if capacity < 1 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Capacity must be at least 1")
	}
	if err := validateTimeOfDay(startTime); err != nil {
		return nil, err
	}
	if err := validateTimeOfDay(endTime); err != nil {
		return nil, err
	}
	if err := validateSchedule(schedule); err != nil {
		return nil, err
	}

	batch := &Batch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		SportID:             sportID,
		Capacity:            capacity,
		StartTime:           startTime,
		EndTime:             endTime,
		Schedule:            dedupeSchedule(schedule),
		CoachIDs:            make([]uuid.UUID, 0),
		StudentIDs:          make([]uuid.UUID, 0),
	}

	batch.AddDomainEvent(NewBatchCreatedEvent(batch))

	return batch, nil
}

// Update updates the batch's mutable settings
func (b *Batch) Update(name string, capacity int, startTime, endTime string, schedule []Weekday) error {
	if err := validateBatchName(name); err != nil {
		return err
	}
	if capacity < 1 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity must be at least 1")
	}
	if capacity < len(b.StudentIDs) {
		return shared.NewDomainError("CAPACITY_BELOW_ENROLLMENT", "Capacity cannot be lower than current enrollment")
	}
	if err := validateTimeOfDay(startTime); err != nil {
		return err
	}
	if err := validateTimeOfDay(endTime); err != nil {
		return err
	}
	if err := validateSchedule(schedule); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.Capacity = capacity
	b.StartTime = startTime
	b.EndTime = endTime
	b.Schedule = dedupeSchedule(schedule)
	b.Touch()
	b.IncrementVersion()

	return nil
}

// ChangeSport points the batch at a different sport of the same tenant.
// Cross-tenant validation happens in the application service.
func (b *Batch) ChangeSport(sportID uuid.UUID) error {
	if sportID == uuid.Nil {
		return shared.NewDomainError("INVALID_SPORT_ID", "Sport ID cannot be empty")
	}

	b.SportID = sportID
	b.Touch()
	b.IncrementVersion()

	return nil
}

// AssignCoach adds a coach to the batch
func (b *Batch) AssignCoach(coachID uuid.UUID) error {
	if coachID == uuid.Nil {
		return shared.NewDomainError("INVALID_COACH_ID", "Coach ID cannot be empty")
	}
	for _, id := range b.CoachIDs {
		if id == coachID {
			return shared.NewDomainError("COACH_ALREADY_ASSIGNED", "Coach is already assigned to this batch")
		}
	}

	b.CoachIDs = append(b.CoachIDs, coachID)
	b.Touch()
	b.IncrementVersion()

	return nil
}

// RemoveCoach removes a coach from the batch
func (b *Batch) RemoveCoach(coachID uuid.UUID) error {
	for i, id := range b.CoachIDs {
		if id == coachID {
			b.CoachIDs = append(b.CoachIDs[:i], b.CoachIDs[i+1:]...)
			b.Touch()
			b.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("COACH_NOT_ASSIGNED", "Coach is not assigned to this batch")
}

// AssignStudent enrolls a student, enforcing capacity
func (b *Batch) AssignStudent(studentID uuid.UUID) error {
	if studentID == uuid.Nil {
		return shared.NewDomainError("INVALID_STUDENT_ID", "Student ID cannot be empty")
	}
	for _, id := range b.StudentIDs {
		if id == studentID {
			return shared.NewDomainError("STUDENT_ALREADY_ENROLLED", "Student is already enrolled in this batch")
		}
	}
	if len(b.StudentIDs) >= b.Capacity {
		return shared.NewDomainError("BATCH_FULL", "Batch has reached its capacity")
	}

	b.StudentIDs = append(b.StudentIDs, studentID)
	b.Touch()
	b.IncrementVersion()

	return nil
}

// RemoveStudent unenrolls a student from the batch
func (b *Batch) RemoveStudent(studentID uuid.UUID) error {
	for i, id := range b.StudentIDs {
		if id == studentID {
			b.StudentIDs = append(b.StudentIDs[:i], b.StudentIDs[i+1:]...)
			b.Touch()
			b.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("STUDENT_NOT_ENROLLED", "Student is not enrolled in this batch")
}

// HasStudent returns true if the student is enrolled
func (b *Batch) HasStudent(studentID uuid.UUID) bool {
	for _, id := range b.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// Validation functions

func validateBatchName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Batch name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Batch name cannot exceed 100 characters")
	}
	return nil
}

func validateTimeOfDay(value string) error {
	if !timeOfDayRegex.MatchString(value) {
		return shared.NewDomainError("INVALID_TIME", "Time must be in HH:MM 24-hour format")
	}
	return nil
}

func validateSchedule(schedule []Weekday) error {
	if len(schedule) == 0 {
		return shared.NewDomainError("INVALID_SCHEDULE", "Schedule must contain at least one weekday")
	}
	for _, day := range schedule {
		switch day {
		case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday, WeekdayFriday, WeekdaySaturday, WeekdaySunday:
		default:
			return shared.NewDomainError("INVALID_SCHEDULE", "Invalid weekday code: "+string(day))
		}
	}
	return nil
}

func dedupeSchedule(schedule []Weekday) []Weekday {
	seen := make(map[Weekday]bool, len(schedule))
	out := make([]Weekday, 0, len(schedule))
	for _, day := range schedule {
		if !seen[day] {
			seen[day] = true
			out = append(out, day)
		}
	}
	return out
}
