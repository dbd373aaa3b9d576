package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-room-console/internal/models"
)

const roomSelect = `SELECT r.id, r.name, r.floor, r.status, r.building_id, r.created_at, r.updated_at, b.name AS building_name
FROM rooms r LEFT JOIN buildings b ON b.id = r.building_id`

type roomRow struct {
	models.Room
	BuildingName sql.NullString `db:"building_name"`
}

func (row roomRow) toModel() models.Room {
	room := row.Room
	if row.BuildingName.Valid {
		room.Building = &models.Ref{ID: room.BuildingID, Name: row.BuildingName.String}
	}
	return room
}

// RoomRepository provides database access for rooms with their building summary.
type RoomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	var rows []roomRow
	if err := r.db.SelectContext(ctx, &rows, roomSelect+` ORDER BY r.id`); err != nil {
		return nil, wrap("list rooms", err)
	}
	rooms := make([]models.Room, len(rows))
	for i, row := range rows {
		rooms[i] = row.toModel()
	}
	return rooms, nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id int64) (*models.Room, error) {
	var row roomRow
	if err := r.db.GetContext(ctx, &row, roomSelect+` WHERE r.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrap("find room", err)
	}
	room := row.toModel()
	return &room, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	now := time.Now().UTC()
	room.CreatedAt, room.UpdatedAt = now, now
	const query = `INSERT INTO rooms (name, floor, status, building_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, room.Name, room.Floor, room.Status, room.BuildingID, room.CreatedAt, room.UpdatedAt).Scan(&room.ID); err != nil {
		return wrap("create room", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	room.UpdatedAt = time.Now().UTC()
	const query = `UPDATE rooms SET name = $2, floor = $3, status = $4, building_id = $5, updated_at = $6 WHERE id = $1`
	return execAffecting(ctx, r.db, "update room", query, room.ID, room.Name, room.Floor, room.Status, room.BuildingID, room.UpdatedAt)
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, "delete room", `DELETE FROM rooms WHERE id = $1`, id)
}
