package roster

import (
	"time"

	"github.com/google/uuid"
)

// SportDTO represents sport data for external use
type SportDTO struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SportListResult represents paginated sport list result
type SportListResult struct {
	Sports     []SportDTO `json:"sports"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// BatchDTO represents batch data for external use
type BatchDTO struct {
	ID         uuid.UUID   `json:"id"`
	TenantID   uuid.UUID   `json:"tenant_id"`
	Name       string      `json:"name"`
	SportID    uuid.UUID   `json:"sport_id"`
	Capacity   int         `json:"capacity"`
	Enrolled   int         `json:"enrolled"`
	StartTime  string      `json:"start_time"`
	EndTime    string      `json:"end_time"`
	Schedule   []string    `json:"schedule"`
	CoachIDs   []uuid.UUID `json:"coach_ids"`
	StudentIDs []uuid.UUID `json:"student_ids"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// BatchListResult represents paginated batch list result
type BatchListResult struct {
	Batches    []BatchDTO `json:"batches"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// StudentDTO represents student data for external use
type StudentDTO struct {
	ID          uuid.UUID   `json:"id"`
	TenantID    uuid.UUID   `json:"tenant_id"`
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	Contact     string      `json:"contact,omitempty"`
	DateOfBirth *time.Time  `json:"date_of_birth,omitempty"`
	JoiningDate time.Time   `json:"joining_date"`
	SportIDs    []uuid.UUID `json:"sport_ids"`
	FeeStatus   string      `json:"fee_status"`
	BatchID     *uuid.UUID  `json:"batch_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// StudentListResult represents paginated student list result
type StudentListResult struct {
	Students   []StudentDTO `json:"students"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
