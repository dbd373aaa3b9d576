package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-room-console/internal/models"
)

// ScheduleFilter narrows schedule listings. Nil fields are ignored.
type ScheduleFilter struct {
	RoomID    *int64
	Day       *models.Day
	TeacherID *int64
}

// ScheduleRepository persists schedules. Each slot is two nullable columns
// joined against users and courses for the read-side summaries.
type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

var (
	scheduleSelect  = buildScheduleSelect()
	scheduleOrderBy = buildScheduleOrder()
)

func buildScheduleSelect() string {
	cols := []string{"s.id", "s.room_id", "s.day", "s.created_at", "s.updated_at", "r.name"}
	joins := []string{"LEFT JOIN rooms r ON r.id = s.room_id"}
	for i, slot := range models.Slots {
		t, c := fmt.Sprintf("t%d", i), fmt.Sprintf("c%d", i)
		cols = append(cols, "s."+slot.TeacherField(), t+".name", "s."+slot.CourseField(), c+".name")
		joins = append(joins,
			fmt.Sprintf("LEFT JOIN users %s ON %s.id = s.%s", t, t, slot.TeacherField()),
			fmt.Sprintf("LEFT JOIN courses %s ON %s.id = s.%s", c, c, slot.CourseField()),
		)
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM schedules s " + strings.Join(joins, " ")
}

func buildScheduleOrder() string {
	days := make([]string, len(models.Days))
	for i, d := range models.Days {
		days[i] = "'" + string(d) + "'"
	}
	return fmt.Sprintf(" ORDER BY s.room_id, array_position(ARRAY[%s]::text[], s.day), s.id", strings.Join(days, ", "))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (models.Schedule, error) {
	var (
		s        models.Schedule
		day      string
		roomName sql.NullString
	)
	teacherIDs := make([]sql.NullInt64, len(models.Slots))
	teacherNames := make([]sql.NullString, len(models.Slots))
	courseIDs := make([]sql.NullInt64, len(models.Slots))
	courseNames := make([]sql.NullString, len(models.Slots))

	dest := []interface{}{&s.ID, &s.RoomID, &day, &s.CreatedAt, &s.UpdatedAt, &roomName}
	for i := range models.Slots {
		dest = append(dest, &teacherIDs[i], &teacherNames[i], &courseIDs[i], &courseNames[i])
	}
	if err := row.Scan(dest...); err != nil {
		return s, err
	}

	s.Day = models.Day(day)
	if roomName.Valid {
		s.Room = &models.Ref{ID: s.RoomID, Name: roomName.String}
	}
	for i, slot := range models.Slots {
		var a models.SlotAssignment
		if teacherIDs[i].Valid {
			id := teacherIDs[i].Int64
			a.TeacherID = &id
			if teacherNames[i].Valid {
				a.Teacher = &models.Ref{ID: id, Name: teacherNames[i].String}
			}
		}
		if courseIDs[i].Valid {
			id := courseIDs[i].Int64
			a.CourseID = &id
			if courseNames[i].Valid {
				a.Course = &models.Ref{ID: id, Name: courseNames[i].String}
			}
		}
		s.SetSlot(slot, a)
	}
	return s, nil
}

// List returns schedules matching filter ordered by room then weekday.
func (r *ScheduleRepository) List(ctx context.Context, filter ScheduleFilter) ([]models.Schedule, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		conditions = append(conditions, fmt.Sprintf("s.room_id = $%d", len(args)))
	}
	if filter.Day != nil {
		args = append(args, string(*filter.Day))
		conditions = append(conditions, fmt.Sprintf("s.day = $%d", len(args)))
	}
	if filter.TeacherID != nil {
		args = append(args, *filter.TeacherID)
		ors := make([]string, len(models.Slots))
		for i, slot := range models.Slots {
			ors[i] = fmt.Sprintf("s.%s = $%d", slot.TeacherField(), len(args))
		}
		conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
	}

	query := scheduleSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += scheduleOrderBy

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("list schedules", err)
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, wrap("scan schedule", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list schedules", err)
	}
	return schedules, nil
}

// FindByID returns sql.ErrNoRows unwrapped when absent.
func (r *ScheduleRepository) FindByID(ctx context.Context, id int64) (*models.Schedule, error) {
	s, err := scanSchedule(r.db.QueryRowxContext(ctx, scheduleSelect+" WHERE s.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrap("find schedule", err)
	}
	return &s, nil
}

func slotValues(s *models.Schedule) []interface{} {
	values := make([]interface{}, 0, 2*len(models.Slots))
	for _, slot := range models.Slots {
		a := s.Slot(slot)
		values = append(values, a.TeacherID, a.CourseID)
	}
	return values
}

func slotColumns() []string {
	cols := make([]string, 0, 2*len(models.Slots))
	for _, slot := range models.Slots {
		cols = append(cols, slot.TeacherField(), slot.CourseField())
	}
	return cols
}

// Create inserts s and fills its id and timestamps.
func (r *ScheduleRepository) Create(ctx context.Context, s *models.Schedule) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	cols := append([]string{"room_id", "day"}, slotColumns()...)
	cols = append(cols, "created_at", "updated_at")
	args := append([]interface{}{s.RoomID, string(s.Day)}, slotValues(s)...)
	args = append(args, s.CreatedAt, s.UpdatedAt)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO schedules (%s) VALUES (%s) RETURNING id",
		strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return wrap("create schedule", err)
	}
	return nil
}

// Update overwrites every column of s.
func (r *ScheduleRepository) Update(ctx context.Context, s *models.Schedule) error {
	s.UpdatedAt = time.Now().UTC()

	cols := append([]string{"room_id", "day"}, slotColumns()...)
	cols = append(cols, "updated_at")
	args := append([]interface{}{s.RoomID, string(s.Day)}, slotValues(s)...)
	args = append(args, s.UpdatedAt)

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	args = append(args, s.ID)
	query := fmt.Sprintf("UPDATE schedules SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	return execAffecting(ctx, r.db, "update schedule", query, args...)
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, "delete schedule", `DELETE FROM schedules WHERE id = $1`, id)
}

// ExistingReferences returns which of the given teacher and course ids exist.
func (r *ScheduleRepository) ExistingReferences(ctx context.Context, teacherIDs, courseIDs []int64) ([]int64, []int64, error) {
	teachers, err := r.existing(ctx, "users", teacherIDs)
	if err != nil {
		return nil, nil, wrap("check teachers", err)
	}
	courses, err := r.existing(ctx, "courses", courseIDs)
	if err != nil {
		return nil, nil, wrap("check courses", err)
	}
	return teachers, courses, nil
}

func (r *ScheduleRepository) existing(ctx context.Context, table string, ids []int64) ([]int64, error) {
	found := []int64{}
	if len(ids) == 0 {
		return found, nil
	}
	query := fmt.Sprintf("SELECT id FROM %s WHERE id = ANY($1)", table)
	if err := r.db.SelectContext(ctx, &found, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return found, nil
}
