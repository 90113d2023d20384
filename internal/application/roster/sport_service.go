package roster

import (
	"context"
	"strings"

	"github.com/clubops/backend/internal/domain/roster"
	"github.com/clubops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SportService handles sport management for a tenant
type SportService struct {
	sportRepo roster.SportRepository
	batchRepo roster.BatchRepository
	logger    *zap.Logger
}

// NewSportService creates a new sport service
func NewSportService(sportRepo roster.SportRepository, batchRepo roster.BatchRepository, logger *zap.Logger) *SportService {
	return &SportService{
		sportRepo: sportRepo,
		batchRepo: batchRepo,
		logger:    logger,
	}
}

// CreateSportInput contains the data needed to create a sport
type CreateSportInput struct {
	TenantID    uuid.UUID
	Name        string
	Description string
}

// UpdateSportInput contains the data needed to update a sport
type UpdateSportInput struct {
	TenantID    uuid.UUID
	ID          uuid.UUID
	Name        string
	Description string
}

// Create creates a new sport for the tenant
func (s *SportService) Create(ctx context.Context, input CreateSportInput) (*SportDTO, error) {
	s.logger.Info("Creating sport",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("name", input.Name))

	exists, err := s.sportRepo.ExistsByName(ctx, input.TenantID, input.Name)
	if err != nil {
		s.logger.Error("Failed to check sport name", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check sport name")
	}
	if exists {
		return nil, shared.NewDomainError("SPORT_NAME_EXISTS", "A sport with this name already exists")
	}

	sport, err := roster.NewSport(input.TenantID, input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.sportRepo.Create(ctx, sport); err != nil {
		s.logger.Error("Failed to create sport", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create sport")
	}

	s.logger.Info("Sport created",
		zap.String("sport_id", sport.ID.String()),
		zap.String("name", sport.Name))

	dto := toSportDTO(sport)
	return &dto, nil
}

// GetByID retrieves a sport within the tenant
func (s *SportService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SportDTO, error) {
	sport, err := s.findTenantSport(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	dto := toSportDTO(sport)
	return &dto, nil
}

// List retrieves the tenant's sports matching the filter
func (s *SportService) List(ctx context.Context, tenantID uuid.UUID, filter roster.SportFilter) (*SportListResult, error) {
	sports, total, err := s.sportRepo.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list sports", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list sports")
	}

	dtos := make([]SportDTO, len(sports))
	for i, sport := range sports {
		dtos[i] = toSportDTO(sport)
	}

	return &SportListResult{
		Sports:     dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
		TotalPages: totalPages(total, filter.Limit()),
	}, nil
}

// Update updates a sport's name and description
func (s *SportService) Update(ctx context.Context, input UpdateSportInput) (*SportDTO, error) {
	sport, err := s.findTenantSport(ctx, input.TenantID, input.ID)
	if err != nil {
		return nil, err
	}

	// Renames must stay unique within the tenant
	if !strings.EqualFold(strings.TrimSpace(input.Name), sport.Name) {
		exists, err := s.sportRepo.ExistsByName(ctx, input.TenantID, input.Name)
		if err != nil {
			s.logger.Error("Failed to check sport name", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check sport name")
		}
		if exists {
			return nil, shared.NewDomainError("SPORT_NAME_EXISTS", "A sport with this name already exists")
		}
	}

	if err := sport.Update(input.Name, input.Description); err != nil {
		return nil, err
	}

	if err := s.sportRepo.Update(ctx, sport); err != nil {
		s.logger.Error("Failed to update sport", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update sport")
	}

	dto := toSportDTO(sport)
	return &dto, nil
}

// Activate activates a sport
func (s *SportService) Activate(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.changeStatus(ctx, tenantID, id, (*roster.Sport).Activate, "activate")
}

// Deactivate deactivates a sport
func (s *SportService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.changeStatus(ctx, tenantID, id, (*roster.Sport).Deactivate, "deactivate")
}

// Delete deletes a sport that no batch references
func (s *SportService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	sport, err := s.findTenantSport(ctx, tenantID, id)
	if err != nil {
		return err
	}

	count, err := s.batchRepo.CountBySport(ctx, sport.ID)
	if err != nil {
		s.logger.Error("Failed to count batches for sport", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check sport usage")
	}
	if count > 0 {
		return shared.NewDomainError("SPORT_IN_USE", "Sport is referenced by existing batches and cannot be deleted")
	}

	if err := s.sportRepo.Delete(ctx, sport.ID); err != nil {
		s.logger.Error("Failed to delete sport", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete sport")
	}

	s.logger.Info("Sport deleted", zap.String("sport_id", id.String()))

	return nil
}

func (s *SportService) changeStatus(ctx context.Context, tenantID, id uuid.UUID, transition func(*roster.Sport) error, action string) error {
	sport, err := s.findTenantSport(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := transition(sport); err != nil {
		return err
	}

	if err := s.sportRepo.Update(ctx, sport); err != nil {
		s.logger.Error("Failed to "+action+" sport", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to "+action+" sport")
	}

	return nil
}

// findTenantSport loads a sport and verifies it belongs to the tenant.
// A sport from another tenant is reported as not found, not forbidden.
func (s *SportService) findTenantSport(ctx context.Context, tenantID, id uuid.UUID) (*roster.Sport, error) {
	sport, err := s.sportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("SPORT_NOT_FOUND", "Sport not found")
	}
	if !sport.BelongsToTenant(tenantID) {
		return nil, shared.NewDomainError("SPORT_NOT_FOUND", "Sport not found")
	}
	return sport, nil
}

func toSportDTO(sport *roster.Sport) SportDTO {
	return SportDTO{
		ID:          sport.ID,
		TenantID:    sport.TenantID,
		Name:        sport.Name,
		Description: sport.Description,
		Status:      string(sport.Status),
		CreatedAt:   sport.CreatedAt,
		UpdatedAt:   sport.UpdatedAt,
	}
}
