package pages

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/client"
	"github.com/noah-isme/sma-room-console/internal/console/crud"
	"github.com/noah-isme/sma-room-console/internal/console/store"
	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/internal/scheduling"
)

// SlotChoice holds the selected ids of one slot as form strings; "" means none.
type SlotChoice struct {
	Teacher string
	Course  string
}

type ScheduleForm struct {
	Day   string `form:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Slots map[models.Slot]SlotChoice
}

// Choice returns the selection of one slot.
func (f ScheduleForm) Choice(slot models.Slot) SlotChoice {
	return f.Slots[slot]
}

func blankScheduleForm() ScheduleForm {
	f := ScheduleForm{Slots: make(map[models.Slot]SlotChoice, len(models.Slots))}
	for _, slot := range models.Slots {
		f.Slots[slot] = SlotChoice{}
	}
	return f
}

func idString(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func parseOptionalID(raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := models.ParseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ScheduleFormOf pre-fills every field of s, nested slot selections included.
func ScheduleFormOf(s models.Schedule) ScheduleForm {
	f := blankScheduleForm()
	f.Day = string(s.Day)
	for _, slot := range models.Slots {
		a := s.Slot(slot)
		f.Slots[slot] = SlotChoice{Teacher: idString(a.TeacherID), Course: idString(a.CourseID)}
	}
	return f
}

func decodeScheduleForm(values url.Values) (ScheduleForm, error) {
	f := blankScheduleForm()
	f.Day = strings.TrimSpace(values.Get("day"))
	for _, slot := range models.Slots {
		f.Slots[slot] = SlotChoice{
			Teacher: strings.TrimSpace(values.Get(slot.TeacherField())),
			Course:  strings.TrimSpace(values.Get(slot.CourseField())),
		}
	}
	return f, nil
}

func checkScheduleForm(f ScheduleForm, _ crud.Mode) map[string]string {
	errs := map[string]string{}
	for _, slot := range models.Slots {
		c := f.Choice(slot)
		if _, err := parseOptionalID(c.Teacher); err != nil {
			errs[slot.TeacherField()] = "teacher is invalid"
		}
		if _, err := parseOptionalID(c.Course); err != nil {
			errs[slot.CourseField()] = "course is invalid"
		}
	}
	return errs
}

// Write builds the payload for roomID. Every slot is sent, cleared ones as null.
func (f ScheduleForm) Write(roomID int64) models.ScheduleWrite {
	slots := make(map[models.Slot]models.SlotAssignment, len(models.Slots))
	for _, slot := range models.Slots {
		c := f.Choice(slot)
		teacher, _ := parseOptionalID(c.Teacher)
		course, _ := parseOptionalID(c.Course)
		slots[slot] = models.SlotAssignment{TeacherID: teacher, CourseID: course}
	}
	return models.FullScheduleWrite(roomID, models.Day(f.Day), slots)
}

func refName(r *models.Ref) string {
	if r == nil || r.Name == "" {
		return Unassigned
	}
	return r.Name
}

// SlotCells renders the four slot columns, course above teacher.
func SlotCells(s models.Schedule) []crud.Cell {
	cells := make([]crud.Cell, 0, len(models.Slots))
	for _, slot := range models.Slots {
		a := s.Slot(slot)
		cells = append(cells, crud.Cell{Class: "slot", Lines: []string{refName(a.Course), refName(a.Teacher)}})
	}
	return cells
}

// Schedules describes the assignment page of one room.
func Schedules(roomID int64, teachers func() []models.User, courses func() []models.Course) crud.Resource[models.Schedule, ScheduleForm] {
	columns := []string{"Room", "Day"}
	for _, slot := range models.Slots {
		columns = append(columns, slot.Header())
	}
	return crud.Resource[models.Schedule, ScheduleForm]{
		Kind:           store.KindSchedules,
		Scope:          strconv.FormatInt(roomID, 10),
		Name:           "schedule",
		Plural:         "schedules",
		Title:          "Assign Schedules",
		CollectionPath: "/api/schedules",
		ListPath:       fmt.Sprintf("/api/schedules/%d", roomID),
		BasePath:       fmt.Sprintf("/assign/%d", roomID),
		StaleOnError:   true,
		Invalidates:    []store.Kind{store.KindTimetable, store.KindDashboard},
		ID:             func(s models.Schedule) int64 { return s.ID },
		Blank:          blankScheduleForm,
		FormOf:         ScheduleFormOf,
		Decode:         decodeScheduleForm,
		Check:          checkScheduleForm,
		CreateBody:     func(f ScheduleForm) interface{} { return f.Write(roomID) },
		UpdateBody:     func(f ScheduleForm) interface{} { return f.Write(roomID) },
		Columns:        columns,
		Row: func(s models.Schedule) []crud.Cell {
			cells := []crud.Cell{crud.TextCell(refName(s.Room)), crud.TextCell(string(s.Day))}
			return append(cells, SlotCells(s)...)
		},
		Fields: func(f ScheduleForm, _ crud.Mode) []crud.Field {
			days := make([]crud.Option, len(models.Days))
			for i, d := range models.Days {
				days[i] = crud.Option{Value: string(d), Label: string(d)}
			}
			teacherOptions := []crud.Option{}
			for _, u := range teachers() {
				teacherOptions = append(teacherOptions, crud.IDOption(u.ID, u.Name))
			}
			courseOptions := []crud.Option{}
			for _, c := range courses() {
				courseOptions = append(courseOptions, crud.IDOption(c.ID, c.Name))
			}

			fields := []crud.Field{crud.SelectField("day", "Day", f.Day, "Select day", days, true)}
			for _, slot := range models.Slots {
				c := f.Choice(slot)
				fields = append(fields,
					crud.SelectField(slot.TeacherField(), slot.Header()+" Teacher", c.Teacher, "Select teacher", teacherOptions, false),
					crud.SelectField(slot.CourseField(), slot.Header()+" Course", c.Course, "Select course", courseOptions, false),
				)
			}
			return fields
		},
		CreateLabel: "Assign Schedule",
		Messages: crud.Messages{
			SaveFailed:   "Failed to assign schedule",
			Created:      "Schedule assigned successfully!",
			CreateTitle:  "Assign Schedule",
			EditTitle:    "Edit Schedule",
			CreateSubmit: "Assign",
		},
	}
}

// AssignPage edits the schedules of one room. Teachers and courses are
// read once per page load and are not re-read after this page's writes.
type AssignPage struct {
	*ScheduleController
	RoomID int64

	api      client.API
	store    *store.Store
	logger   *zap.Logger
	precheck bool
	teachers []models.User
	courses  []models.Course
}

func NewAssignPage(roomID int64, api client.API, st *store.Store, precheck bool, logger *zap.Logger) *AssignPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &AssignPage{RoomID: roomID, api: api, store: st, logger: logger, precheck: precheck}
	p.ScheduleController = crud.NewController(
		Schedules(roomID, func() []models.User { return p.teachers }, func() []models.Course { return p.courses }),
		api, st, logger,
	)
	return p
}

// Load fetches the room's schedules plus the teacher and course choices.
// The first unauthorized error wins so the shell can log out.
func (p *AssignPage) Load(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if firstErr == nil && err != nil {
			firstErr = err
		}
	}

	keep(p.ScheduleController.Load(ctx))

	users, err := fetchList[models.User](ctx, p.api, p.store, store.Key{Kind: store.KindUsers}, "/api/users")
	if err != nil {
		p.logger.Warn("teacher options fetch failed", zap.Error(err))
		p.Notify(crud.LevelError, "Failed to fetch users")
	} else {
		p.teachers = users
	}
	keep(err)

	courses, err := fetchList[models.Course](ctx, p.api, p.store, store.Key{Kind: store.KindCourses}, "/api/courses")
	if err != nil {
		p.logger.Warn("course options fetch failed", zap.Error(err))
		p.Notify(crud.LevelError, "Failed to fetch courses")
	} else {
		p.courses = courses
	}
	keep(err)
	return firstErr
}

func (p *AssignPage) Teachers() []models.User  { return p.teachers }
func (p *AssignPage) Courses() []models.Course { return p.courses }

// SubmitValues runs the optional console precheck before the save.
func (p *AssignPage) SubmitValues(ctx context.Context, values url.Values) error {
	form, _ := decodeScheduleForm(values)
	if p.precheck && models.Day(form.Day).Valid() && len(checkScheduleForm(form, p.Mode())) == 0 {
		violations, err := p.check(ctx, form)
		if err != nil {
			p.Fail(form, "Failed to assign schedule")
			return err
		}
		if len(violations) > 0 {
			p.Fail(form, "Failed to assign schedule: "+violations[0].Message)
			return nil
		}
	}
	return p.ScheduleController.Submit(ctx, form)
}

// check applies the room/day and teacher double booking rules against every
// schedule on the same day.
func (p *AssignPage) check(ctx context.Context, form ScheduleForm) ([]scheduling.Violation, error) {
	all, err := fetchList[models.Schedule](ctx, p.api, p.store, store.Key{Kind: store.KindSchedules, Scope: "all"}, "/api/schedules")
	if err != nil {
		return nil, err
	}
	candidate := models.Schedule{ID: p.EditingID()}
	form.Write(p.RoomID).Apply(&candidate)
	rules := scheduling.Rules{UniqueRoomDay: true, NoTeacherDoubleBooking: true}
	return rules.Check(candidate, all, nil), nil
}
