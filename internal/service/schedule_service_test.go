package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/internal/repository"
	"github.com/noah-isme/sma-room-console/internal/scheduling"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
)

type mockScheduleRepo struct {
	rows       map[int64]models.Schedule
	nextID     int64
	filters    []repository.ScheduleFilter
	refCalls   int
	knownUsers []int64
	created    int
	updated    int
}

func newMockScheduleRepo(rows ...models.Schedule) *mockScheduleRepo {
	m := &mockScheduleRepo{rows: map[int64]models.Schedule{}, nextID: 10}
	for _, r := range rows {
		m.rows[r.ID] = r
	}
	return m
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter) ([]models.Schedule, error) {
	m.filters = append(m.filters, filter)
	out := []models.Schedule{}
	for _, r := range m.rows {
		if filter.RoomID != nil && r.RoomID != *filter.RoomID {
			continue
		}
		if filter.Day != nil && r.Day != *filter.Day {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockScheduleRepo) FindByID(_ context.Context, id int64) (*models.Schedule, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

func (m *mockScheduleRepo) Create(_ context.Context, s *models.Schedule) error {
	m.nextID++
	m.created++
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	m.rows[s.ID] = *s
	return nil
}

func (m *mockScheduleRepo) Update(_ context.Context, s *models.Schedule) error {
	if _, ok := m.rows[s.ID]; !ok {
		return sql.ErrNoRows
	}
	m.updated++
	m.rows[s.ID] = *s
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

func (m *mockScheduleRepo) ExistingReferences(_ context.Context, teacherIDs, courseIDs []int64) ([]int64, []int64, error) {
	m.refCalls++
	var teachers []int64
	for _, id := range teacherIDs {
		for _, known := range m.knownUsers {
			if id == known {
				teachers = append(teachers, id)
			}
		}
	}
	return teachers, courseIDs, nil
}

func id(v int64) *int64 { return &v }

func monday(roomID int64, teacher *int64) models.ScheduleWrite {
	return models.FullScheduleWrite(roomID, models.Monday, map[models.Slot]models.SlotAssignment{
		models.Slot7To9AM: {TeacherID: teacher, CourseID: id(3)},
	})
}

func TestScheduleCreateAcceptsDuplicatesByDefault(t *testing.T) {
	repo := newMockScheduleRepo()
	svc := NewScheduleService(repo, nil, scheduling.Rules{}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, monday(1, id(7)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, monday(1, id(7)))
	require.NoError(t, err)

	assert.Equal(t, 2, repo.created)
	assert.Empty(t, repo.filters, "no rule enabled, no lookup")
	assert.Zero(t, repo.refCalls)
}

func TestScheduleCreateUniqueRoomDay(t *testing.T) {
	existing := models.Schedule{ID: 4, RoomID: 1, Day: models.Monday}
	repo := newMockScheduleRepo(existing)
	svc := NewScheduleService(repo, nil, scheduling.Rules{UniqueRoomDay: true}, zap.NewNop())

	_, err := svc.Create(context.Background(), monday(1, nil))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrScheduleRule.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, string(scheduling.DimensionRoomDay))
	assert.Equal(t, 0, repo.created)
	require.Len(t, repo.filters, 1)
	assert.Equal(t, models.Monday, *repo.filters[0].Day)
}

func TestScheduleUpdateIgnoresItself(t *testing.T) {
	existing := models.Schedule{ID: 4, RoomID: 1, Day: models.Monday}
	repo := newMockScheduleRepo(existing)
	svc := NewScheduleService(repo, nil, scheduling.Rules{UniqueRoomDay: true, NoTeacherDoubleBooking: true}, zap.NewNop())

	var patch models.ScheduleWrite
	require.NoError(t, patch.UnmarshalJSON([]byte(`{"time_9_11_am": 7}`)))
	updated, err := svc.Update(context.Background(), 4, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(7), *updated.Slot(models.Slot9To11AM).TeacherID)
	assert.Equal(t, 1, repo.updated)
}

func TestScheduleUpdatePartialKeepsOtherSlots(t *testing.T) {
	existing := models.Schedule{ID: 4, RoomID: 1, Day: models.Monday}
	existing.SetSlot(models.Slot1To3PM, models.SlotAssignment{TeacherID: id(2), CourseID: id(5)})
	repo := newMockScheduleRepo(existing)
	svc := NewScheduleService(repo, nil, scheduling.Rules{}, zap.NewNop())

	var patch models.ScheduleWrite
	require.NoError(t, patch.UnmarshalJSON([]byte(`{"time_1_3_pm_course": null}`)))
	updated, err := svc.Update(context.Background(), 4, patch)
	require.NoError(t, err)

	slot := updated.Slot(models.Slot1To3PM)
	assert.Equal(t, int64(2), *slot.TeacherID)
	assert.Nil(t, slot.CourseID)
}

func TestScheduleVerifyReferences(t *testing.T) {
	repo := newMockScheduleRepo()
	repo.knownUsers = []int64{7}
	svc := NewScheduleService(repo, nil, scheduling.Rules{VerifyReferences: true}, zap.NewNop())

	_, err := svc.Create(context.Background(), monday(1, id(99)))
	assert.True(t, errors.Is(err, appErrors.ErrScheduleRule))
	assert.Equal(t, 1, repo.refCalls)

	_, err = svc.Create(context.Background(), monday(1, id(7)))
	assert.NoError(t, err)
}

func TestScheduleCreateRequiresRoomAndDay(t *testing.T) {
	svc := NewScheduleService(newMockScheduleRepo(), nil, scheduling.Rules{}, zap.NewNop())

	_, err := svc.Create(context.Background(), models.ScheduleWrite{})
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "room_id")
	assert.Contains(t, appErr.Fields, "day")

	bad := models.Day("Funday")
	_, err = svc.Create(context.Background(), models.ScheduleWrite{RoomID: id(1), Day: &bad})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestScheduleDeleteMissing(t *testing.T) {
	svc := NewScheduleService(newMockScheduleRepo(), nil, scheduling.Rules{}, zap.NewNop())
	err := svc.Delete(context.Background(), 3)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestScheduleWritesInvalidateTimetables(t *testing.T) {
	cacheRepo := newMemoryCache()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewScheduleService(newMockScheduleRepo(), cache, scheduling.Rules{}, zap.NewNop())

	_, err := svc.Create(context.Background(), monday(1, id(7)))
	require.NoError(t, err)
	assert.Contains(t, cacheRepo.deleted, "timetable:user:*")
	assert.Contains(t, cacheRepo.deleted, CacheKeyDashboard)
}
