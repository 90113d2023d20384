package handler

import (
	"time"

	"github.com/clubops/backend/internal/application/roster"
	domainroster "github.com/clubops/backend/internal/domain/roster"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// StudentHandler handles student roster HTTP requests
type StudentHandler struct {
	BaseHandler
	studentService *roster.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *roster.StudentService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
	}
}

// CreateStudentRequest represents the request body for student creation.
// Dates use the YYYY-MM-DD layout.
type CreateStudentRequest struct {
	Name        string      `json:"name" binding:"required,min=2,max=200"`
	Email       string      `json:"email" binding:"omitempty,email"`
	Contact     string      `json:"contact" binding:"omitempty,max=50"`
	DateOfBirth string      `json:"date_of_birth" binding:"omitempty"`
	JoiningDate string      `json:"joining_date" binding:"required"`
	SportIDs    []uuid.UUID `json:"sport_ids"`
}

// UpdateStudentRequest represents the request body for student update
type UpdateStudentRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Contact string `json:"contact" binding:"omitempty,max=50"`
}

// SetDateOfBirthRequest represents the request body for setting a birth date
type SetDateOfBirthRequest struct {
	DateOfBirth string `json:"date_of_birth" binding:"required"`
}

// SetFeeStatusRequest represents the request body for a fee status change
type SetFeeStatusRequest struct {
	FeeStatus string `json:"fee_status" binding:"required,oneof=PAID UNPAID PENDING"`
}

// ListStudentsRequest represents the query parameters for student listing
type ListStudentsRequest struct {
	Keyword   string `form:"keyword"`
	BatchID   string `form:"batch_id" binding:"omitempty,uuid"`
	SportID   string `form:"sport_id" binding:"omitempty,uuid"`
	FeeStatus string `form:"fee_status" binding:"omitempty,oneof=PAID UNPAID PENDING"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StudentResponse represents student data in responses
type StudentResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	Contact     string      `json:"contact,omitempty"`
	DateOfBirth *string     `json:"date_of_birth,omitempty"`
	JoiningDate string      `json:"joining_date"`
	SportIDs    []uuid.UUID `json:"sport_ids"`
	FeeStatus   string      `json:"fee_status"`
	BatchID     *uuid.UUID  `json:"batch_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func toStudentResponse(s *roster.StudentDTO) StudentResponse {
	resp := StudentResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Contact:     s.Contact,
		JoiningDate: s.JoiningDate.Format(dateLayout),
		SportIDs:    s.SportIDs,
		FeeStatus:   s.FeeStatus,
		BatchID:     s.BatchID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.DateOfBirth != nil {
		dob := s.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &dob
	}
	return resp
}

// Create registers a student, optionally linked to sports
func (h *StudentHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	joiningDate, err := time.Parse(dateLayout, req.JoiningDate)
	if err != nil {
		h.BadRequest(c, "Invalid joining date, expected YYYY-MM-DD")
		return
	}

	input := roster.CreateStudentInput{
		TenantID:    tenantID,
		Name:        req.Name,
		Email:       req.Email,
		Contact:     req.Contact,
		JoiningDate: joiningDate,
		SportIDs:    req.SportIDs,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			h.BadRequest(c, "Invalid date of birth, expected YYYY-MM-DD")
			return
		}
		input.DateOfBirth = &dob
	}

	student, err := h.studentService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toStudentResponse(student))
}

// GetByID retrieves a student from the caller's tenant
func (h *StudentHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(student))
}

// List returns a filtered, paginated list of the tenant's students
func (h *StudentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req ListStudentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := domainroster.StudentFilter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.BatchID != "" {
		batchID, err := uuid.Parse(req.BatchID)
		if err != nil {
			h.BadRequest(c, "Invalid batch ID filter")
			return
		}
		filter.BatchID = &batchID
	}
	if req.SportID != "" {
		sportID, err := uuid.Parse(req.SportID)
		if err != nil {
			h.BadRequest(c, "Invalid sport ID filter")
			return
		}
		filter.SportID = &sportID
	}
	if req.FeeStatus != "" {
		feeStatus := domainroster.FeeStatus(req.FeeStatus)
		filter.FeeStatus = &feeStatus
	}

	result, err := h.studentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]StudentResponse, len(result.Students))
	for i := range result.Students {
		responses[i] = toStudentResponse(&result.Students[i])
	}

	h.SuccessWithMeta(c, responses, result.Total, result.Page, result.PageSize)
}

// Update modifies a student's contact details
func (h *StudentHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), roster.UpdateStudentInput{
		TenantID: tenantID,
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(student))
}

// SetDateOfBirth records a student's birth date
func (h *StudentHandler) SetDateOfBirth(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req SetDateOfBirthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		h.BadRequest(c, "Invalid date of birth, expected YYYY-MM-DD")
		return
	}

	if err := h.studentService.SetDateOfBirth(c.Request.Context(), tenantID, id, dob); err != nil {
		h.HandleError(c, err)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(student))
}

// SetFeeStatus changes a student's fee status
func (h *StudentHandler) SetFeeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req SetFeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.SetFeeStatus(c.Request.Context(), tenantID, id, req.FeeStatus)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(student))
}

// AddSport links a student to a sport
func (h *StudentHandler) AddSport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	sportID, err := uuid.Parse(c.Param("sport_id"))
	if err != nil {
		h.BadRequest(c, "Invalid sport ID")
		return
	}

	student, err := h.studentService.AddSport(c.Request.Context(), tenantID, id, sportID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(student))
}

// RemoveSport unlinks a student from a sport
func (h *StudentHandler) RemoveSport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	sportID, err := uuid.Parse(c.Param("sport_id"))
	if err != nil {
		h.BadRequest(c, "Invalid sport ID")
		return
	}

	student, err := h.studentService.RemoveSport(c.Request.Context(), tenantID, id, sportID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(student))
}

// Delete removes a student and their enrollment links
func (h *StudentHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
