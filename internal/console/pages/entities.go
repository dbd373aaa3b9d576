// Package pages instantiates the console pages on top of the crud controller.
package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/client"
	"github.com/noah-isme/sma-room-console/internal/console/crud"
	"github.com/noah-isme/sma-room-console/internal/console/store"
	"github.com/noah-isme/sma-room-console/internal/models"
)

// Unassigned is shown for every missing teacher, course or room.
const Unassigned = "Unassigned"

// Controller aliases keep the workspace readable.
type (
	BuildingController = crud.Controller[models.Building, BuildingForm]
	CourseController   = crud.Controller[models.Course, CourseForm]
	UserController     = crud.Controller[models.User, UserForm]
	RoomController     = crud.Controller[models.Room, RoomForm]
	ScheduleController = crud.Controller[models.Schedule, ScheduleForm]
)

var roleOptions = []crud.Option{
	{Value: string(models.RoleAdmin), Label: "Admin"},
	{Value: string(models.RoleUser), Label: "User"},
	{Value: string(models.RoleTeacher), Label: "Teacher"},
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type BuildingForm struct {
	Name   string `form:"name" validate:"required"`
	Code   string `form:"code" validate:"required"`
	Floor  int    `form:"floor" validate:"gte=0"`
	Status string `form:"status"`
}

func (f BuildingForm) request() models.BuildingRequest {
	return models.BuildingRequest{Name: strings.TrimSpace(f.Name), Code: strings.TrimSpace(f.Code), Floor: f.Floor, Status: optional(f.Status)}
}

// Buildings describes the building page. A building write also changes the
// building names embedded in rooms.
func Buildings() crud.Resource[models.Building, BuildingForm] {
	return crud.Resource[models.Building, BuildingForm]{
		Kind:           store.KindBuildings,
		Name:           "building",
		Plural:         "buildings",
		Title:          "Buildings",
		CollectionPath: "/api/buildings",
		BasePath:       "/building",
		Invalidates:    []store.Kind{store.KindRooms, store.KindDashboard},
		ID:             func(b models.Building) int64 { return b.ID },
		Blank:          func() BuildingForm { return BuildingForm{} },
		FormOf: func(b models.Building) BuildingForm {
			return BuildingForm{Name: b.Name, Code: b.Code, Floor: b.Floor, Status: deref(b.Status)}
		},
		CreateBody: func(f BuildingForm) interface{} { return f.request() },
		UpdateBody: func(f BuildingForm) interface{} { return f.request() },
		Columns:    []string{"Name", "Code", "Floor", "Status"},
		Row: func(b models.Building) []crud.Cell {
			return []crud.Cell{crud.TextCell(b.Name), crud.TextCell(b.Code), crud.TextCell(strconv.Itoa(b.Floor)), crud.TextCell(deref(b.Status))}
		},
		Fields: func(f BuildingForm, _ crud.Mode) []crud.Field {
			return []crud.Field{
				crud.TextField("name", "Name", f.Name, true),
				crud.TextField("code", "Code", f.Code, true),
				crud.NumberField("floor", "Floor", f.Floor, false),
				crud.TextField("status", "Status", f.Status, false),
			}
		},
	}
}

type CourseForm struct {
	Name        string `form:"name" validate:"required"`
	Code        string `form:"code"`
	Description string `form:"description"`
}

func (f CourseForm) request() models.CourseRequest {
	return models.CourseRequest{Name: strings.TrimSpace(f.Name), Code: strings.TrimSpace(f.Code), Description: optional(f.Description)}
}

// Courses describes the course page. Course names appear in schedules and timetables.
func Courses() crud.Resource[models.Course, CourseForm] {
	return crud.Resource[models.Course, CourseForm]{
		Kind:           store.KindCourses,
		Name:           "course",
		Plural:         "courses",
		Title:          "Courses",
		CollectionPath: "/api/courses",
		BasePath:       "/course",
		Invalidates:    []store.Kind{store.KindSchedules, store.KindTimetable, store.KindDashboard},
		ID:             func(c models.Course) int64 { return c.ID },
		Blank:          func() CourseForm { return CourseForm{} },
		FormOf: func(c models.Course) CourseForm {
			return CourseForm{Name: c.Name, Code: c.Code, Description: deref(c.Description)}
		},
		CreateBody: func(f CourseForm) interface{} { return f.request() },
		UpdateBody: func(f CourseForm) interface{} { return f.request() },
		Columns:    []string{"Course Name", "Code", "Description"},
		Row: func(c models.Course) []crud.Cell {
			return []crud.Cell{crud.TextCell(c.Name), crud.TextCell(c.Code), crud.TextCell(deref(c.Description))}
		},
		Fields: func(f CourseForm, _ crud.Mode) []crud.Field {
			return []crud.Field{
				crud.TextField("name", "Course Name", f.Name, true),
				crud.TextField("code", "Code", f.Code, false),
				crud.TextField("description", "Description", f.Description, false),
			}
		},
	}
}

type UserForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Role     string `form:"role" validate:"required,oneof=admin user teacher"`
	Password string `form:"password"`
}

// Users describes the user page. The password is asked for on create only
// and never sent on edit.
func Users() crud.Resource[models.User, UserForm] {
	return crud.Resource[models.User, UserForm]{
		Kind:           store.KindUsers,
		Name:           "user",
		Plural:         "users",
		Title:          "Users",
		CollectionPath: "/api/users",
		BasePath:       "/user",
		Invalidates:    []store.Kind{store.KindSchedules, store.KindTimetable, store.KindSubmits, store.KindDashboard},
		ID:             func(u models.User) int64 { return u.ID },
		Blank:          func() UserForm { return UserForm{} },
		FormOf: func(u models.User) UserForm {
			return UserForm{Name: u.Name, Email: u.Email, Role: string(u.Role)}
		},
		Check: func(f UserForm, mode crud.Mode) map[string]string {
			if mode == crud.ModeCreate && f.Password == "" {
				return map[string]string{"password": "password is required"}
			}
			return nil
		},
		CreateBody: func(f UserForm) interface{} {
			return models.CreateUserRequest{
				Name:     strings.TrimSpace(f.Name),
				Email:    strings.TrimSpace(f.Email),
				Role:     models.UserRole(f.Role),
				Password: f.Password,
			}
		},
		UpdateBody: func(f UserForm) interface{} {
			name, email, role := strings.TrimSpace(f.Name), strings.TrimSpace(f.Email), models.UserRole(f.Role)
			return models.UpdateUserRequest{Name: &name, Email: &email, Role: &role}
		},
		Columns: []string{"Name", "Email", "Role"},
		Row: func(u models.User) []crud.Cell {
			return []crud.Cell{crud.TextCell(u.Name), crud.TextCell(u.Email), crud.TextCell(string(u.Role))}
		},
		Links: func(u models.User) []crud.Link {
			return []crud.Link{{Label: "Timetable", Href: fmt.Sprintf("/timetable/%d", u.ID)}}
		},
		Fields: func(f UserForm, mode crud.Mode) []crud.Field {
			fields := []crud.Field{
				crud.TextField("name", "Name", f.Name, true),
				{Name: "email", Label: "Email", Type: "email", Value: f.Email, Required: true},
				crud.SelectField("role", "Role", f.Role, "Select role", roleOptions, true),
			}
			if mode == crud.ModeCreate {
				fields = append(fields, crud.Field{Name: "password", Label: "Password", Type: "password", Required: true})
			}
			return fields
		},
	}
}

type RoomForm struct {
	Name       string `form:"name" validate:"required"`
	Floor      int    `form:"floor" validate:"gte=0"`
	BuildingID int64  `form:"building_id" validate:"required,gt=0"`
	Status     bool   `form:"status"`
}

// RoomPage is the room list plus the buildings offered in its select.
type RoomPage struct {
	*RoomController
	api       client.API
	store     *store.Store
	logger    *zap.Logger
	buildings []models.Building
}

// Rooms describes the room page. New rooms are always created active; the
// status toggle only appears when editing.
func Rooms(buildings func() []models.Building) crud.Resource[models.Room, RoomForm] {
	return crud.Resource[models.Room, RoomForm]{
		Kind:           store.KindRooms,
		Name:           "room",
		Plural:         "rooms",
		Title:          "Rooms",
		CollectionPath: "/api/rooms",
		BasePath:       "/room",
		Invalidates:    []store.Kind{store.KindSchedules, store.KindTimetable, store.KindSubmits, store.KindDashboard},
		ID:             func(r models.Room) int64 { return r.ID },
		Blank:          func() RoomForm { return RoomForm{} },
		FormOf: func(r models.Room) RoomForm {
			return RoomForm{Name: r.Name, Floor: r.Floor, BuildingID: r.BuildingID, Status: r.Status}
		},
		CreateBody: func(f RoomForm) interface{} {
			active := true
			return models.RoomRequest{Name: strings.TrimSpace(f.Name), Floor: f.Floor, BuildingID: f.BuildingID, Status: &active}
		},
		UpdateBody: func(f RoomForm) interface{} {
			name, floor, building, status := strings.TrimSpace(f.Name), f.Floor, f.BuildingID, f.Status
			return models.RoomUpdateRequest{Name: &name, Floor: &floor, BuildingID: &building, Status: &status}
		},
		Columns: []string{"Name", "Floor", "Status", "Building"},
		Row: func(r models.Room) []crud.Cell {
			status := "Inactive"
			if r.Status {
				status = "Active"
			}
			building := ""
			if r.Building != nil {
				building = r.Building.Name
			}
			return []crud.Cell{crud.TextCell(r.Name), crud.TextCell(strconv.Itoa(r.Floor)), crud.TextCell(status), crud.TextCell(building)}
		},
		Links: func(r models.Room) []crud.Link {
			return []crud.Link{{Label: "Schedule", Href: fmt.Sprintf("/assign/%d", r.ID)}}
		},
		Fields: func(f RoomForm, mode crud.Mode) []crud.Field {
			options := []crud.Option{}
			for _, b := range buildings() {
				options = append(options, crud.IDOption(b.ID, b.Name))
			}
			selected := ""
			if f.BuildingID > 0 {
				selected = strconv.FormatInt(f.BuildingID, 10)
			}
			fields := []crud.Field{
				crud.TextField("name", "Name", f.Name, true),
				crud.NumberField("floor", "Floor", f.Floor, false),
				crud.SelectField("building_id", "Building", selected, "Select building", options, true),
			}
			if mode == crud.ModeEdit {
				fields = append(fields, crud.CheckboxField("status", "Active", f.Status))
			}
			return fields
		},
	}
}

func NewRoomPage(api client.API, st *store.Store, logger *zap.Logger) *RoomPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &RoomPage{api: api, store: st, logger: logger}
	p.RoomController = crud.NewController(Rooms(func() []models.Building { return p.buildings }), api, st, logger)
	return p
}

// Load fetches rooms and the building choices.
func (p *RoomPage) Load(ctx context.Context) error {
	buildings, err := fetchList[models.Building](ctx, p.api, p.store, store.Key{Kind: store.KindBuildings}, "/api/buildings")
	if err != nil {
		p.logger.Warn("building options fetch failed", zap.Error(err))
		p.Notify(crud.LevelError, "Failed to fetch buildings")
	} else {
		p.buildings = buildings
	}
	if roomErr := p.RoomController.Load(ctx); roomErr != nil {
		return roomErr
	}
	return err
}

func (p *RoomPage) Buildings() []models.Building { return p.buildings }

func fetchList[T any](ctx context.Context, api client.API, st *store.Store, key store.Key, path string) ([]T, error) {
	return store.Fetch(ctx, st, key, func(ctx context.Context) ([]T, error) {
		var out []T
		if err := api.List(ctx, path, &out); err != nil {
			return nil, err
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	})
}
