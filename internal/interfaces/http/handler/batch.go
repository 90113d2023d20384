package handler

import (
	"context"
	"time"

	"github.com/clubops/backend/internal/application/roster"
	domainroster "github.com/clubops/backend/internal/domain/roster"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BatchHandler handles training batch HTTP requests
type BatchHandler struct {
	BaseHandler
	batchService *roster.BatchService
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(batchService *roster.BatchService) *BatchHandler {
	return &BatchHandler{
		batchService: batchService,
	}
}

// CreateBatchRequest represents the request body for batch creation.
// StartTime and EndTime are HH:MM wall-clock strings; Schedule lists
// weekday names.
type CreateBatchRequest struct {
	SportID   uuid.UUID `json:"sport_id" binding:"required"`
	Name      string    `json:"name" binding:"required,min=2,max=100"`
	Capacity  int       `json:"capacity" binding:"required,min=1"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
	Schedule  []string  `json:"schedule" binding:"required,min=1"`
}

// UpdateBatchRequest represents the request body for batch update
type UpdateBatchRequest struct {
	Name      string   `json:"name" binding:"required,min=2,max=100"`
	Capacity  int      `json:"capacity" binding:"required,min=1"`
	StartTime string   `json:"start_time" binding:"required"`
	EndTime   string   `json:"end_time" binding:"required"`
	Schedule  []string `json:"schedule" binding:"required,min=1"`
}

// ChangeSportRequest represents the request body for moving a batch to another sport
type ChangeSportRequest struct {
	SportID uuid.UUID `json:"sport_id" binding:"required"`
}

// ListBatchesRequest represents the query parameters for batch listing
type ListBatchesRequest struct {
	Keyword  string `form:"keyword"`
	SportID  string `form:"sport_id" binding:"omitempty,uuid"`
	CoachID  string `form:"coach_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BatchResponse represents batch data in responses
type BatchResponse struct {
	ID         uuid.UUID   `json:"id"`
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

func toBatchResponse(b *roster.BatchDTO) BatchResponse {
	return BatchResponse{
		ID:         b.ID,
		Name:       b.Name,
		SportID:    b.SportID,
		Capacity:   b.Capacity,
		Enrolled:   b.Enrolled,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Schedule:   b.Schedule,
		CoachIDs:   b.CoachIDs,
		StudentIDs: b.StudentIDs,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// Create adds a training batch under an active sport
func (h *BatchHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	batch, err := h.batchService.Create(c.Request.Context(), roster.CreateBatchInput{
		TenantID:  tenantID,
		SportID:   req.SportID,
		Name:      req.Name,
		Capacity:  req.Capacity,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Schedule:  req.Schedule,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toBatchResponse(batch))
}

// GetByID retrieves a batch from the caller's tenant
func (h *BatchHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.batchService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBatchResponse(batch))
}

// List returns a filtered, paginated list of the tenant's batches
func (h *BatchHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req ListBatchesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := domainroster.BatchFilter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.SportID != "" {
		sportID, err := uuid.Parse(req.SportID)
		if err != nil {
			h.BadRequest(c, "Invalid sport ID filter")
			return
		}
		filter.SportID = &sportID
	}
	if req.CoachID != "" {
		coachID, err := uuid.Parse(req.CoachID)
		if err != nil {
			h.BadRequest(c, "Invalid coach ID filter")
			return
		}
		filter.CoachID = &coachID
	}

	result, err := h.batchService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]BatchResponse, len(result.Batches))
	for i := range result.Batches {
		responses[i] = toBatchResponse(&result.Batches[i])
	}

	h.SuccessWithMeta(c, responses, result.Total, result.Page, result.PageSize)
}

// Update modifies a batch's schedule, capacity, or name
func (h *BatchHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	var req UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	batch, err := h.batchService.Update(c.Request.Context(), roster.UpdateBatchInput{
		TenantID:  tenantID,
		ID:        id,
		Name:      req.Name,
		Capacity:  req.Capacity,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Schedule:  req.Schedule,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBatchResponse(batch))
}

// ChangeSport moves a batch under a different active sport
func (h *BatchHandler) ChangeSport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	var req ChangeSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	batch, err := h.batchService.ChangeSport(c.Request.Context(), tenantID, id, req.SportID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBatchResponse(batch))
}

// AssignCoach links a coach to a batch
func (h *BatchHandler) AssignCoach(c *gin.Context) {
	h.memberOp(c, "coach_id", h.batchService.AssignCoach)
}

// RemoveCoach unlinks a coach from a batch
func (h *BatchHandler) RemoveCoach(c *gin.Context) {
	h.memberOp(c, "coach_id", h.batchService.RemoveCoach)
}

// AssignStudent enrolls a student into a batch
func (h *BatchHandler) AssignStudent(c *gin.Context) {
	h.memberOp(c, "student_id", h.batchService.AssignStudent)
}

// RemoveStudent withdraws a student from a batch
func (h *BatchHandler) RemoveStudent(c *gin.Context) {
	h.memberOp(c, "student_id", h.batchService.RemoveStudent)
}

// memberOp handles the shared shape of coach/student assignment routes:
// batch ID in the path, member ID in its own path segment.
func (h *BatchHandler) memberOp(c *gin.Context, param string, op func(ctx context.Context, tenantID, batchID, memberID uuid.UUID) (*roster.BatchDTO, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	memberID, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	batch, err := op(c.Request.Context(), tenantID, batchID, memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBatchResponse(batch))
}

// Delete removes a batch and its assignment links
func (h *BatchHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	if err := h.batchService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
