package handler

import (
	"context"
	"time"

	"github.com/clubops/backend/internal/application/roster"
	domainroster "github.com/clubops/backend/internal/domain/roster"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SportHandler handles sport catalog HTTP requests
type SportHandler struct {
	BaseHandler
	sportService *roster.SportService
}

// NewSportHandler creates a new sport handler
func NewSportHandler(sportService *roster.SportService) *SportHandler {
	return &SportHandler{
		sportService: sportService,
	}
}

// CreateSportRequest represents the request body for sport creation
type CreateSportRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// UpdateSportRequest represents the request body for sport update
type UpdateSportRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// ListSportsRequest represents the query parameters for sport listing
type ListSportsRequest struct {
	Keyword  string `form:"keyword"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SportResponse represents sport data in responses
type SportResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toSportResponse(s *roster.SportDTO) SportResponse {
	return SportResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// Create adds a sport to the tenant's catalog
func (h *SportHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req CreateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sport, err := h.sportService.Create(c.Request.Context(), roster.CreateSportInput{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toSportResponse(sport))
}

// GetByID retrieves a sport from the tenant's catalog
func (h *SportHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sport ID")
		return
	}

	sport, err := h.sportService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toSportResponse(sport))
}

// List returns a filtered, paginated list of the tenant's sports
func (h *SportHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req ListSportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := domainroster.SportFilter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := domainroster.SportStatus(req.Status)
		filter.Status = &status
	}

	result, err := h.sportService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]SportResponse, len(result.Sports))
	for i := range result.Sports {
		responses[i] = toSportResponse(&result.Sports[i])
	}

	h.SuccessWithMeta(c, responses, result.Total, result.Page, result.PageSize)
}

// Update renames a sport or changes its description
func (h *SportHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sport ID")
		return
	}

	var req UpdateSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sport, err := h.sportService.Update(c.Request.Context(), roster.UpdateSportInput{
		TenantID:    tenantID,
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toSportResponse(sport))
}

// Activate makes an inactive sport available for new batches
func (h *SportHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.sportService.Activate)
}

// Deactivate retires a sport without deleting its history
func (h *SportHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.sportService.Deactivate)
}

func (h *SportHandler) changeStatus(c *gin.Context, op func(ctx context.Context, tenantID, id uuid.UUID) error) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sport ID")
		return
	}

	if err := op(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	sport, err := h.sportService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toSportResponse(sport))
}

// Delete removes a sport that no batch or student references
func (h *SportHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sport ID")
		return
	}

	if err := h.sportService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
