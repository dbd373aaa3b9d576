package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-room-console/internal/models"
)

const buildingColumns = `id, name, code, floor, status, created_by, created_at, updated_at`

// BuildingRepository provides database access for buildings.
type BuildingRepository struct {
	db *sqlx.DB
}

func NewBuildingRepository(db *sqlx.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

func (r *BuildingRepository) List(ctx context.Context) ([]models.Building, error) {
	const query = `SELECT ` + buildingColumns + ` FROM buildings ORDER BY id`
	buildings := []models.Building{}
	if err := r.db.SelectContext(ctx, &buildings, query); err != nil {
		return nil, wrap("list buildings", err)
	}
	return buildings, nil
}

// FindByID returns sql.ErrNoRows unwrapped when the building does not exist.
func (r *BuildingRepository) FindByID(ctx context.Context, id int64) (*models.Building, error) {
	const query = `SELECT ` + buildingColumns + ` FROM buildings WHERE id = $1`
	var b models.Building
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrap("find building", err)
	}
	return &b, nil
}

func (r *BuildingRepository) Create(ctx context.Context, b *models.Building) error {
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	const query = `INSERT INTO buildings (name, code, floor, status, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, b.Name, b.Code, b.Floor, b.Status, b.CreatedBy, b.CreatedAt, b.UpdatedAt).Scan(&b.ID); err != nil {
		return wrap("create building", err)
	}
	return nil
}

func (r *BuildingRepository) Update(ctx context.Context, b *models.Building) error {
	b.UpdatedAt = time.Now().UTC()
	const query = `UPDATE buildings SET name = $2, code = $3, floor = $4, status = $5, updated_at = $6 WHERE id = $1`
	return execAffecting(ctx, r.db, "update building", query, b.ID, b.Name, b.Code, b.Floor, b.Status, b.UpdatedAt)
}

func (r *BuildingRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, "delete building", `DELETE FROM buildings WHERE id = $1`, id)
}
