package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/internal/repository"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
)

type mockRoomRepo struct {
	rows      map[int64]models.Room
	nextID    int64
	createErr error
}

func (m *mockRoomRepo) List(context.Context) ([]models.Room, error) {
	out := []models.Room{}
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

// FindByID mimics the joined read by attaching a building summary.
func (m *mockRoomRepo) FindByID(_ context.Context, id int64) (*models.Room, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	r.Building = &models.Ref{ID: r.BuildingID, Name: fmt.Sprintf("Building %d", r.BuildingID)}
	return &r, nil
}

func (m *mockRoomRepo) Create(_ context.Context, r *models.Room) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	r.ID = m.nextID
	m.rows[r.ID] = *r
	return nil
}

func (m *mockRoomRepo) Update(_ context.Context, r *models.Room) error {
	m.rows[r.ID] = *r
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

func TestRoomCreateReturnsBuildingSummary(t *testing.T) {
	repo := &mockRoomRepo{rows: map[int64]models.Room{}}
	svc := NewRoomService(repo, nil, nil, nil)

	on := true
	room, err := svc.Create(context.Background(), models.RoomRequest{Name: "A101", Floor: 1, BuildingID: 3, Status: &on})
	require.NoError(t, err)
	assert.True(t, room.Status)
	require.NotNil(t, room.Building)
	assert.Equal(t, "Building 3", room.Building.Name)
}

func TestRoomCreateUnknownBuilding(t *testing.T) {
	repo := &mockRoomRepo{rows: map[int64]models.Room{}, createErr: fmt.Errorf("create room: %w", repository.ErrForeignKey)}
	svc := NewRoomService(repo, nil, nil, nil)

	_, err := svc.Create(context.Background(), models.RoomRequest{Name: "A101", BuildingID: 99})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestRoomPartialUpdate(t *testing.T) {
	repo := &mockRoomRepo{rows: map[int64]models.Room{4: {ID: 4, Name: "A101", Floor: 1, BuildingID: 3, Status: true}}}
	svc := NewRoomService(repo, nil, nil, nil)

	off := false
	room, err := svc.Update(context.Background(), 4, models.RoomUpdateRequest{Status: &off})
	require.NoError(t, err)
	assert.False(t, room.Status)
	assert.Equal(t, "A101", room.Name)
	assert.Equal(t, int64(3), room.BuildingID)
}

func TestRoomCreateRequiresBuilding(t *testing.T) {
	svc := NewRoomService(&mockRoomRepo{rows: map[int64]models.Room{}}, nil, nil, nil)
	_, err := svc.Create(context.Background(), models.RoomRequest{Name: "A101"})
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Fields, "building_id")
}
