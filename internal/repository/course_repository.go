package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-room-console/internal/models"
)

const courseColumns = `id, name, code, description, created_at, updated_at`

// CourseRepository provides database access for courses.
type CourseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses ORDER BY id`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, wrap("list courses", err)
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	var c models.Course
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrap("find course", err)
	}
	return &c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	const query = `INSERT INTO courses (name, code, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, c.Name, c.Code, c.Description, c.CreatedAt, c.UpdatedAt).Scan(&c.ID); err != nil {
		return wrap("create course", err)
	}
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, c *models.Course) error {
	c.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = $2, code = $3, description = $4, updated_at = $5 WHERE id = $1`
	return execAffecting(ctx, r.db, "update course", query, c.ID, c.Name, c.Code, c.Description, c.UpdatedAt)
}

func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, "delete course", `DELETE FROM courses WHERE id = $1`, id)
}
