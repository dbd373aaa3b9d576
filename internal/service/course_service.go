package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, c *models.Course) error
	Update(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseService manages courses.
type CourseService struct {
	repo      courseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewCourseService(repo courseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoError(err, "course", "list")
	}
	return courses, nil
}

func (s *CourseService) Create(ctx context.Context, req models.CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}
	c := &models.Course{Name: req.Name, Code: req.Code, Description: req.Description}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, repoError(err, "course", "create")
	}
	s.cache.InvalidateCounts(ctx)
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, id int64, req models.CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "course", "load")
	}
	c.Name, c.Code, c.Description = req.Name, req.Code, req.Description
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, repoError(err, "course", "update")
	}
	s.cache.InvalidateTimetables(ctx)
	return c, nil
}

// Delete removes a course. Schedule slots pointing at it are cleared by the database.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, "course", "delete")
	}
	s.cache.InvalidateTimetables(ctx)
	return nil
}
