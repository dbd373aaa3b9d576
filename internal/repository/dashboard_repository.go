package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-room-console/internal/models"
)

// DashboardRepository aggregates table counters in one round trip.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

const dashboardCountsQuery = `SELECT
	(SELECT COUNT(*) FROM users) AS users_count,
	(SELECT COUNT(*) FROM courses) AS courses_count,
	(SELECT COUNT(*) FROM buildings) AS buildings_count,
	(SELECT COUNT(*) FROM rooms) AS rooms_count,
	(SELECT COUNT(*) FROM submits) AS submits_count,
	(SELECT COUNT(*) FROM schedules) AS schedules_count`

func (r *DashboardRepository) Counts(ctx context.Context) (*models.DashboardCounts, error) {
	var counts models.DashboardCounts
	if err := r.db.GetContext(ctx, &counts, dashboardCountsQuery); err != nil {
		return nil, wrap("dashboard counts", err)
	}
	return &counts, nil
}
