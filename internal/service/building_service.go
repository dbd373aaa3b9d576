package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
)

type buildingRepository interface {
	List(ctx context.Context) ([]models.Building, error)
	FindByID(ctx context.Context, id int64) (*models.Building, error)
	Create(ctx context.Context, b *models.Building) error
	Update(ctx context.Context, b *models.Building) error
	Delete(ctx context.Context, id int64) error
}

// BuildingService manages buildings.
type BuildingService struct {
	repo      buildingRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewBuildingService(repo buildingRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *BuildingService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildingService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func (s *BuildingService) List(ctx context.Context) ([]models.Building, error) {
	buildings, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoError(err, "building", "list")
	}
	return buildings, nil
}

// Create stores a building attributed to actorID when non-zero.
func (s *BuildingService) Create(ctx context.Context, req models.BuildingRequest, actorID int64) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid building payload")
	}
	b := &models.Building{Name: req.Name, Code: req.Code, Floor: req.Floor, Status: req.Status}
	if actorID > 0 {
		b.CreatedBy = &actorID
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, repoError(err, "building", "create")
	}
	s.cache.InvalidateCounts(ctx)
	s.logger.Info("building created", zap.Int64("id", b.ID))
	return b, nil
}

func (s *BuildingService) Update(ctx context.Context, id int64, req models.BuildingRequest) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid building payload")
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "building", "load")
	}
	b.Name, b.Code, b.Floor = req.Name, req.Code, req.Floor
	if req.Status != nil {
		b.Status = req.Status
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, repoError(err, "building", "update")
	}
	// room summaries embed the building name
	s.cache.InvalidateTimetables(ctx)
	return b, nil
}

func (s *BuildingService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, "building", "delete")
	}
	s.cache.InvalidateCounts(ctx)
	return nil
}
