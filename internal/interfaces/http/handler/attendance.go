package handler

import (
	"time"

	"github.com/clubops/backend/internal/application/attendance"
	"github.com/clubops/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceHandler handles attendance ledger HTTP requests.
// Tenant and role always come from the JWT claims; coaches reach these
// routes too, so per-operation role checks live in the service.
type AttendanceHandler struct {
	BaseHandler
	attendanceService *attendance.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *attendance.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// MarkAttendanceRequest represents the request body for marking one entity.
// Status defaults to PRESENT when omitted.
type MarkAttendanceRequest struct {
	EntityType string    `json:"entity_type" binding:"required,oneof=student coach"`
	EntityID   uuid.UUID `json:"entity_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	Status     string    `json:"status" binding:"omitempty,oneof=PRESENT ABSENT LATE"`
}

// BulkMarkEntryRequest is one student's status in a bulk mark request
type BulkMarkEntryRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	Status    string    `json:"status" binding:"omitempty,oneof=PRESENT ABSENT LATE"`
}

// BulkMarkRequest represents the request body for marking a batch's students
type BulkMarkRequest struct {
	BatchID uuid.UUID              `json:"batch_id" binding:"required"`
	Date    string                 `json:"date" binding:"required"`
	Entries []BulkMarkEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// UpdateAttendanceStatusRequest represents the request body for a status correction
type UpdateAttendanceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE"`
}

// RangeQueryRequest represents the query parameters for a date-range read
type RangeQueryRequest struct {
	StartDate  string `form:"start_date" binding:"required"`
	EndDate    string `form:"end_date" binding:"required"`
	EntityType string `form:"entity_type" binding:"omitempty,oneof=student coach"`
	EntityID   string `form:"entity_id" binding:"omitempty,uuid"`
}

// MonthlySummaryQueryRequest represents the query parameters for a monthly summary
type MonthlySummaryQueryRequest struct {
	Month   int    `form:"month" binding:"required,min=1,max=12"`
	Year    int    `form:"year" binding:"required,min=2000,max=2100"`
	BatchID string `form:"batch_id" binding:"omitempty,uuid"`
}

// EntityReportQueryRequest represents the query parameters for an entity report
type EntityReportQueryRequest struct {
	EntityType string `form:"entity_type" binding:"required,oneof=student coach"`
	StartDate  string `form:"start_date" binding:"required"`
	EndDate    string `form:"end_date" binding:"required"`
}

// Mark records one entity's attendance for a day
func (h *AttendanceHandler) Mark(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	record, err := h.attendanceService.Mark(c.Request.Context(), attendance.MarkInput{
		TenantID:   tenantID,
		Role:       identity.Role(getRole(c)),
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Date:       date,
		Status:     req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// BulkMark overwrites a batch's student attendance for one day
func (h *AttendanceHandler) BulkMark(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req BulkMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	entries := make([]attendance.BulkMarkEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = attendance.BulkMarkEntry{
			StudentID: e.StudentID,
			Status:    e.Status,
		}
	}

	records, err := h.attendanceService.BulkMarkStudents(c.Request.Context(), attendance.BulkMarkInput{
		TenantID: tenantID,
		Role:     identity.Role(getRole(c)),
		BatchID:  req.BatchID,
		Date:     date,
		Entries:  entries,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, records)
}

// UpdateStatus corrects an existing record's status
func (h *AttendanceHandler) UpdateStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	var req UpdateAttendanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.attendanceService.UpdateStatus(c.Request.Context(), attendance.UpdateStatusInput{
		TenantID: tenantID,
		Role:     identity.Role(getRole(c)),
		RecordID: recordID,
		Status:   req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// Today returns the current day's ledger slice for the tenant
func (h *AttendanceHandler) Today(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	result, err := h.attendanceService.Today(c.Request.Context(), tenantID, identity.Role(getRole(c)))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ByDateRange returns records in a window, optionally scoped to one entity
func (h *AttendanceHandler) ByDateRange(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req RangeQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := attendance.RangeInput{
		TenantID:  tenantID,
		Role:      identity.Role(getRole(c)),
		StartDate: startDate,
		EndDate:   endDate,
	}
	if req.EntityType != "" {
		input.EntityType = &req.EntityType
	}
	if req.EntityID != "" {
		entityID, err := uuid.Parse(req.EntityID)
		if err != nil {
			h.BadRequest(c, "Invalid entity ID filter")
			return
		}
		input.EntityID = &entityID
	}

	records, err := h.attendanceService.ByDateRange(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// MonthlySummary returns per-entity aggregates for one month
func (h *AttendanceHandler) MonthlySummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req MonthlySummaryQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	input := attendance.MonthlySummaryInput{
		TenantID: tenantID,
		Role:     identity.Role(getRole(c)),
		Month:    req.Month,
		Year:     req.Year,
	}
	if req.BatchID != "" {
		batchID, err := uuid.Parse(req.BatchID)
		if err != nil {
			h.BadRequest(c, "Invalid batch ID filter")
			return
		}
		input.BatchID = &batchID
	}

	result, err := h.attendanceService.MonthlySummary(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// EntityReport returns one entity's records plus an aggregate summary
func (h *AttendanceHandler) EntityReport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	var req EntityReportQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.attendanceService.EntityReport(c.Request.Context(), attendance.EntityReportInput{
		TenantID:   tenantID,
		Role:       identity.Role(getRole(c)),
		EntityType: req.EntityType,
		EntityID:   entityID,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
