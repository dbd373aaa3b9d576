package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/internal/repository"
	"github.com/noah-isme/sma-room-console/internal/scheduling"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
)

type scheduleRepository interface {
	List(ctx context.Context, filter repository.ScheduleFilter) ([]models.Schedule, error)
	FindByID(ctx context.Context, id int64) (*models.Schedule, error)
	Create(ctx context.Context, s *models.Schedule) error
	Update(ctx context.Context, s *models.Schedule) error
	Delete(ctx context.Context, id int64) error
	ExistingReferences(ctx context.Context, teacherIDs, courseIDs []int64) ([]int64, []int64, error)
}

// ScheduleService coordinates schedule writes and the optional rule checks.
type ScheduleService struct {
	repo   scheduleRepository
	cache  *CacheService
	rules  scheduling.Rules
	logger *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo scheduleRepository, cache *CacheService, rules scheduling.Rules, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, cache: cache, rules: rules, logger: logger}
}

// List returns every schedule.
func (s *ScheduleService) List(ctx context.Context) ([]models.Schedule, error) {
	return s.list(ctx, repository.ScheduleFilter{})
}

// ListByRoom returns the schedules of one room in weekday order.
func (s *ScheduleService) ListByRoom(ctx context.Context, roomID int64) ([]models.Schedule, error) {
	return s.list(ctx, repository.ScheduleFilter{RoomID: &roomID})
}

func (s *ScheduleService) list(ctx context.Context, filter repository.ScheduleFilter) ([]models.Schedule, error) {
	schedules, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, repoError(err, "schedule", "list")
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	return schedules, nil
}

// Create inserts a schedule. Slots absent from the payload stay unassigned.
func (s *ScheduleService) Create(ctx context.Context, write models.ScheduleWrite) (*models.Schedule, error) {
	fields := map[string]string{}
	if write.RoomID == nil || *write.RoomID <= 0 {
		fields["room_id"] = "room_id is required"
	}
	if write.Day == nil {
		fields["day"] = "day is required"
	}
	if len(fields) > 0 {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid schedule payload"), fields)
	}

	var schedule models.Schedule
	write.Apply(&schedule)
	if err := s.validateDay(schedule.Day); err != nil {
		return nil, err
	}
	if err := s.enforceRules(ctx, schedule); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &schedule); err != nil {
		return nil, repoError(err, "schedule", "create")
	}
	s.cache.InvalidateTimetables(ctx)
	s.logger.Info("schedule created", zap.Int64("id", schedule.ID), zap.Int64("room_id", schedule.RoomID), zap.String("day", string(schedule.Day)))
	return s.reload(ctx, &schedule), nil
}

// Update merges the present fields of write into the stored row.
func (s *ScheduleService) Update(ctx context.Context, id int64, write models.ScheduleWrite) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "schedule", "load")
	}
	if write.RoomID != nil && *write.RoomID <= 0 {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid schedule payload"),
			map[string]string{"room_id": "room_id is invalid"})
	}

	write.Apply(schedule)
	if err := s.validateDay(schedule.Day); err != nil {
		return nil, err
	}
	if err := s.enforceRules(ctx, *schedule); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, repoError(err, "schedule", "update")
	}
	s.cache.InvalidateTimetables(ctx)
	return s.reload(ctx, schedule), nil
}

// Delete removes a schedule row.
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, "schedule", "delete")
	}
	s.cache.InvalidateTimetables(ctx)
	return nil
}

func (s *ScheduleService) validateDay(day models.Day) error {
	if day.Valid() {
		return nil
	}
	return appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid schedule payload"),
		map[string]string{"day": "day must be one of Monday..Sunday"})
}

// enforceRules loads only what the enabled rules need and folds violations into a conflict.
func (s *ScheduleService) enforceRules(ctx context.Context, candidate models.Schedule) error {
	if !s.rules.Enabled() {
		return nil
	}

	var existing []models.Schedule
	if s.rules.NeedsExisting() {
		day := candidate.Day
		rows, err := s.repo.List(ctx, repository.ScheduleFilter{Day: &day})
		if err != nil {
			return repoError(err, "schedule", "check")
		}
		existing = rows
	}

	var known *scheduling.References
	if s.rules.VerifyReferences {
		teacherIDs, courseIDs := referencedIDs(candidate)
		teachers, courses, err := s.repo.ExistingReferences(ctx, teacherIDs, courseIDs)
		if err != nil {
			return repoError(err, "schedule", "check")
		}
		known = scheduling.NewReferences(teachers, courses)
	}

	violations := s.rules.Check(candidate, existing, known)
	if len(violations) > 0 {
		s.logger.Info("schedule rejected",
			zap.Int64("room_id", candidate.RoomID),
			zap.String("day", string(candidate.Day)),
			zap.Int("violations", len(violations)))
	}
	return scheduling.AsError(violations)
}

func referencedIDs(s models.Schedule) (teachers, courses []int64) {
	for _, slot := range models.Slots {
		a := s.Slot(slot)
		if a.TeacherID != nil {
			teachers = append(teachers, *a.TeacherID)
		}
		if a.CourseID != nil {
			courses = append(courses, *a.CourseID)
		}
	}
	return teachers, courses
}

// reload returns the joined row with embedded summaries, or the written row on failure.
func (s *ScheduleService) reload(ctx context.Context, schedule *models.Schedule) *models.Schedule {
	fresh, err := s.repo.FindByID(ctx, schedule.ID)
	if err != nil {
		s.logger.Warn("reload schedule failed", zap.Int64("id", schedule.ID), zap.Error(err))
		return schedule
	}
	return fresh
}
