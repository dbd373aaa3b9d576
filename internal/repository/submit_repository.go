package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-room-console/internal/models"
)

// SubmitRepository reads room usage submissions.
type SubmitRepository struct {
	db *sqlx.DB
}

func NewSubmitRepository(db *sqlx.DB) *SubmitRepository {
	return &SubmitRepository{db: db}
}

type submitRow struct {
	ID            int64          `db:"id"`
	SubmittedDate time.Time      `db:"submitted_date"`
	Type          string         `db:"type"`
	Note          sql.NullString `db:"note"`
	RoomID        sql.NullInt64  `db:"room_id"`
	RoomName      sql.NullString `db:"room_name"`
	BuildingID    sql.NullInt64  `db:"building_id"`
	BuildingName  sql.NullString `db:"building_name"`
	UserID        sql.NullInt64  `db:"user_id"`
	UserName      sql.NullString `db:"user_name"`
}

func (row submitRow) toModel() models.Submit {
	s := models.Submit{ID: row.ID, SubmittedDate: row.SubmittedDate, Type: row.Type}
	if row.Note.Valid {
		note := row.Note.String
		s.Note = &note
	}
	if row.RoomID.Valid {
		s.Room = &models.RoomSummary{ID: row.RoomID.Int64, Name: row.RoomName.String}
		if row.BuildingID.Valid {
			s.Room.Building = &models.Ref{ID: row.BuildingID.Int64, Name: row.BuildingName.String}
		}
	}
	if row.UserID.Valid {
		s.User = &models.Ref{ID: row.UserID.Int64, Name: row.UserName.String}
	}
	return s
}

// List returns one page of submissions, newest first, with the filtered total.
func (r *SubmitRepository) List(ctx context.Context, filter models.SubmitFilter) ([]models.Submit, int, error) {
	base := ` FROM submits s
LEFT JOIN rooms r ON r.id = s.room_id
LEFT JOIN buildings b ON b.id = r.building_id
LEFT JOIN users u ON u.id = s.user_id WHERE 1=1`

	var args []interface{}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		base += fmt.Sprintf(" AND s.user_id = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		base += fmt.Sprintf(" AND s.submitted_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		// inclusive of the whole end day
		args = append(args, filter.EndDate.AddDate(0, 0, 1))
		base += fmt.Sprintf(" AND s.submitted_date < $%d", len(args))
	}

	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}

	cols := []string{
		"s.id", "s.submitted_date", "s.type", "s.note",
		"s.room_id", "r.name AS room_name", "r.building_id", "b.name AS building_name",
		"s.user_id", "u.name AS user_name",
	}
	listQuery := fmt.Sprintf("SELECT %s%s ORDER BY s.submitted_date DESC, s.id DESC LIMIT %d OFFSET %d",
		strings.Join(cols, ", "), base, size, (page-1)*size)

	var rows []submitRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, wrap("list submits", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*)"+base, args...); err != nil {
		return nil, 0, wrap("count submits", err)
	}

	submits := make([]models.Submit, len(rows))
	for i, row := range rows {
		submits[i] = row.toModel()
	}
	return submits, total, nil
}
