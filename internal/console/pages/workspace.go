package pages

import (
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/client"
	"github.com/noah-isme/sma-room-console/internal/console/crud"
	"github.com/noah-isme/sma-room-console/internal/console/store"
)

type Options struct {
	StoreTTL         time.Duration
	SchedulePrecheck bool
}

// Workspace is the page state of one console session. All pages share one
// store, so a write on one page is seen by the next render of another.
type Workspace struct {
	Buildings *BuildingController
	Courses   *CourseController
	Users     *UserController
	Rooms     *RoomPage
	Dashboard *DashboardPage
	Submits   *SubmitsPage

	api       client.API
	store     *store.Store
	logger    *zap.Logger
	opts      Options
	assign    *AssignPage
	timetable *TimetablePage
}

func NewWorkspace(api client.API, opts Options, logger *zap.Logger) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := store.New(opts.StoreTTL)
	return &Workspace{
		Buildings: crud.NewController(Buildings(), api, st, logger),
		Courses:   crud.NewController(Courses(), api, st, logger),
		Users:     crud.NewController(Users(), api, st, logger),
		Rooms:     NewRoomPage(api, st, logger),
		Dashboard: NewDashboardPage(api, st, logger),
		Submits:   NewSubmitsPage(api, st, logger),
		api:       api,
		store:     st,
		logger:    logger,
		opts:      opts,
	}
}

// Assign returns the assignment page of roomID, starting a fresh one when
// the operator switches rooms.
func (w *Workspace) Assign(roomID int64) *AssignPage {
	if w.assign == nil || w.assign.RoomID != roomID {
		w.assign = NewAssignPage(roomID, w.api, w.store, w.opts.SchedulePrecheck, w.logger)
	}
	return w.assign
}

func (w *Workspace) Timetable(userID int64) *TimetablePage {
	if w.timetable == nil || w.timetable.UserID != userID {
		w.timetable = NewTimetablePage(userID, w.api, w.store, w.logger)
	}
	return w.timetable
}

func (w *Workspace) Store() *store.Store { return w.store }
