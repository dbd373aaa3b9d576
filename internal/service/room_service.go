package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
)

type roomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id int64) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id int64) error
}

// RoomService manages rooms.
type RoomService struct {
	repo      roomRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewRoomService(repo roomRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoError(err, "room", "list")
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "room", "load")
	}
	return room, nil
}

// Create stores a room and returns it with its building summary.
func (s *RoomService) Create(ctx context.Context, req models.RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid room payload")
	}
	room := &models.Room{Name: req.Name, Floor: req.Floor, BuildingID: req.BuildingID}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, repoError(err, "room", "create")
	}
	s.cache.InvalidateCounts(ctx)
	return s.reload(ctx, room), nil
}

func (s *RoomService) Update(ctx context.Context, id int64, req models.RoomUpdateRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid room payload")
	}
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "room", "load")
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.BuildingID != nil {
		room.BuildingID = *req.BuildingID
	}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, repoError(err, "room", "update")
	}
	s.cache.InvalidateTimetables(ctx)
	return s.reload(ctx, room), nil
}

func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, "room", "delete")
	}
	s.cache.InvalidateTimetables(ctx)
	return nil
}

// reload fetches the joined row; on failure the written row is returned as is.
func (s *RoomService) reload(ctx context.Context, room *models.Room) *models.Room {
	fresh, err := s.repo.FindByID(ctx, room.ID)
	if err != nil {
		s.logger.Warn("reload room failed", zap.Int64("id", room.ID), zap.Error(err))
		return room
	}
	return fresh
}
