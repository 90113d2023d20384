package roster

import (
	"regexp"
	"strings"
	"time"

	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FeeStatus represents a student's fee payment status
type FeeStatus string

const (
	FeeStatusPaid    FeeStatus = "PAID"
	FeeStatusUnpaid  FeeStatus = "UNPAID"
	FeeStatusPending FeeStatus = "PENDING"
)

var studentEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Student represents an enrolled club member
type Student struct {
	shared.TenantAggregateRoot
	Name        string
	Email       string
	Contact     string
	DateOfBirth *time.Time
	JoiningDate time.Time
	SportIDs    []uuid.UUID // loaded by the repository from the membership table
	FeeStatus   FeeStatus
	BatchID     *uuid.UUID
}

// NewStudent creates a new student for a tenant
func NewStudent(tenantID uuid.UUID, name, email, contact string, joiningDate time.Time) (*Student, error) {
	if err := validateStudentName(name); err != nil {
		return nil, err
	}
	if email != "" && !studentEmailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if contact != "" && len(contact) > 50 {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact cannot exceed 50 characters")
	}
	if joiningDate.IsZero() {
		joiningDate = time.Now()
	}

	student := &Student{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Email:               strings.ToLower(strings.TrimSpace(email)),
		Contact:             strings.TrimSpace(contact),
		JoiningDate:         joiningDate,
		SportIDs:            make([]uuid.UUID, 0),
		FeeStatus:           FeeStatusPending,
	}

	student.AddDomainEvent(NewStudentCreatedEvent(student))

	return student, nil
}

// Update updates the student's basic information
func (s *Student) Update(name, email, contact string) error {
	if err := validateStudentName(name); err != nil {
		return err
	}
	if email != "" && !studentEmailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if contact != "" && len(contact) > 50 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact cannot exceed 50 characters")
	}

	s.Name = strings.TrimSpace(name)
	s.Email = strings.ToLower(strings.TrimSpace(email))
	s.Contact = strings.TrimSpace(contact)
	s.Touch()
	s.IncrementVersion()

	return nil
}

// SetDateOfBirth sets the student's date of birth
func (s *Student) SetDateOfBirth(dob time.Time) error {
	if dob.After(time.Now()) {
		return shared.NewDomainError("INVALID_DOB", "Date of birth cannot be in the future")
	}

	s.DateOfBirth = &dob
	s.Touch()
	s.IncrementVersion()

	return nil
}

// SetFeeStatus updates the student's fee status
func (s *Student) SetFeeStatus(status FeeStatus) error {
	switch status {
	case FeeStatusPaid, FeeStatusUnpaid, FeeStatusPending:
	default:
		return shared.NewDomainError("INVALID_FEE_STATUS", "Invalid fee status")
	}

	s.FeeStatus = status
	s.Touch()
	s.IncrementVersion()

	return nil
}

// AssignToBatch places the student in a batch
func (s *Student) AssignToBatch(batchID uuid.UUID) error {
	if batchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BATCH_ID", "Batch ID cannot be empty")
	}

	s.BatchID = &batchID
	s.Touch()
	s.IncrementVersion()

	return nil
}

// RemoveFromBatch clears the student's batch assignment
func (s *Student) RemoveFromBatch() {
	s.BatchID = nil
	s.Touch()
	s.IncrementVersion()
}

// AddSport links the student to a sport
func (s *Student) AddSport(sportID uuid.UUID) error {
	if sportID == uuid.Nil {
		return shared.NewDomainError("INVALID_SPORT_ID", "Sport ID cannot be empty")
	}
	for _, id := range s.SportIDs {
		if id == sportID {
			return shared.NewDomainError("SPORT_ALREADY_ADDED", "Student is already linked to this sport")
		}
	}

	s.SportIDs = append(s.SportIDs, sportID)
	s.Touch()
	s.IncrementVersion()

	return nil
}

// RemoveSport unlinks the student from a sport
func (s *Student) RemoveSport(sportID uuid.UUID) error {
	for i, id := range s.SportIDs {
		if id == sportID {
			s.SportIDs = append(s.SportIDs[:i], s.SportIDs[i+1:]...)
			s.Touch()
			s.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("SPORT_NOT_LINKED", "Student is not linked to this sport")
}

func validateStudentName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Student name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Student name cannot exceed 200 characters")
	}
	return nil
}
