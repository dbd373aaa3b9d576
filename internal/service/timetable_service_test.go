package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/internal/repository"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
)

type stubScheduleLister struct {
	rows    []models.Schedule
	filters []repository.ScheduleFilter
}

func (s *stubScheduleLister) List(_ context.Context, filter repository.ScheduleFilter) ([]models.Schedule, error) {
	s.filters = append(s.filters, filter)
	return s.rows, nil
}

type stubUserFinder struct{ missing bool }

func (s stubUserFinder) FindByID(_ context.Context, id int64) (*models.User, error) {
	if s.missing {
		return nil, sql.ErrNoRows
	}
	return &models.User{ID: id}, nil
}

func taughtRow(day models.Day, room string, slot models.Slot, teacher int64, course string) models.Schedule {
	s := models.Schedule{ID: 1, RoomID: 1, Day: day, Room: &models.Ref{ID: 1, Name: room}}
	s.SetSlot(slot, models.SlotAssignment{
		TeacherID: &teacher,
		Teacher:   &models.Ref{ID: teacher, Name: "Teacher"},
		CourseID:  id(3),
		Course:    &models.Ref{ID: 3, Name: course},
	})
	return s
}

func TestBuildTimetableKeepsOnlyUserSlots(t *testing.T) {
	rows := []models.Schedule{
		taughtRow(models.Monday, "A101", models.Slot7To9AM, 7, "Math"),
		taughtRow(models.Wednesday, "B2", models.Slot3To5PM, 8, "Art"),
	}
	timetable := BuildTimetable(rows, 7)

	require.Len(t, timetable, 1)
	entries := timetable["Monday"]["7:00 - 9:00"]
	require.Len(t, entries, 1)
	assert.Equal(t, "A101", *entries[0].Room)
	assert.Equal(t, "Math", *entries[0].Course)
}

func TestBuildTimetableNullCourse(t *testing.T) {
	row := models.Schedule{ID: 2, Day: models.Friday}
	row.SetSlot(models.Slot9To11AM, models.SlotAssignment{TeacherID: id(7)})

	entries := BuildTimetable([]models.Schedule{row}, 7)["Friday"]["9:00 - 11:00"]
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Course)
	assert.Nil(t, entries[0].Room)
}

func TestTimetableForUserCachesAndFilters(t *testing.T) {
	lister := &stubScheduleLister{rows: []models.Schedule{taughtRow(models.Monday, "A101", models.Slot7To9AM, 7, "Math")}}
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewTimetableService(lister, stubUserFinder{}, cache, time.Minute, nil)

	_, hit, err := svc.ForUser(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, lister.filters, 1)
	assert.Equal(t, int64(7), *lister.filters[0].TeacherID)

	tt, hit, err := svc.ForUser(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Contains(t, tt, "Monday")
	assert.Len(t, lister.filters, 1)
}

func TestTimetableUnknownUser(t *testing.T) {
	svc := NewTimetableService(&stubScheduleLister{}, stubUserFinder{missing: true}, nil, 0, nil)
	_, _, err := svc.ForUser(context.Background(), 9)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
