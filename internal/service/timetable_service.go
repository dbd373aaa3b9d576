package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/internal/repository"
)

type timetableScheduleLister interface {
	List(ctx context.Context, filter repository.ScheduleFilter) ([]models.Schedule, error)
}

type timetableUserFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// TimetableService pivots the schedules a user teaches into day × time label cells.
type TimetableService struct {
	schedules timetableScheduleLister
	users     timetableUserFinder
	cache     *CacheService
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewTimetableService(schedules timetableScheduleLister, users timetableUserFinder, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{schedules: schedules, users: users, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ForUser returns the user's timetable and whether it was served from cache.
// Only days with at least one assignment appear.
func (s *TimetableService) ForUser(ctx context.Context, userID int64) (models.Timetable, bool, error) {
	key := TimetableCacheKey(userID)
	var cached models.Timetable
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, false, repoError(err, "user", "load")
	}
	rows, err := s.schedules.List(ctx, repository.ScheduleFilter{TeacherID: &userID})
	if err != nil {
		return nil, false, repoError(err, "timetable", "load")
	}

	timetable := BuildTimetable(rows, userID)
	s.cache.Set(ctx, key, timetable, s.cacheTTL)
	return timetable, false, nil
}

// BuildTimetable keeps the slots taught by userID. Cells hold names, not ids.
func BuildTimetable(rows []models.Schedule, userID int64) models.Timetable {
	timetable := models.Timetable{}
	for _, row := range rows {
		for _, slot := range models.Slots {
			a := row.Slot(slot)
			if a.TeacherID == nil || *a.TeacherID != userID {
				continue
			}
			entry := models.TimetableEntry{
				Room:    refName(row.Room),
				Course:  refName(a.Course),
				Teacher: refName(a.Teacher),
			}
			day := string(row.Day)
			if timetable[day] == nil {
				timetable[day] = map[string][]models.TimetableEntry{}
			}
			label := slot.TimetableLabel()
			timetable[day][label] = append(timetable[day][label], entry)
		}
	}
	return timetable
}

func refName(ref *models.Ref) *string {
	if ref == nil {
		return nil
	}
	name := ref.Name
	return &name
}
