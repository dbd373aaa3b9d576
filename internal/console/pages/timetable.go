package pages

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/client"
	"github.com/noah-isme/sma-room-console/internal/console/crud"
	"github.com/noah-isme/sma-room-console/internal/console/store"
	"github.com/noah-isme/sma-room-console/internal/models"
)

// TimetableLine is one assignment inside a grid cell.
type TimetableLine struct {
	Room    string
	Course  string
	Teacher string
}

type TimetableCell struct {
	Day     string
	Entries []TimetableLine
}

// Empty cells render the Unassigned placeholder.
func (c TimetableCell) Empty() bool { return len(c.Entries) == 0 }

type TimetableRow struct {
	Label string
	Cells []TimetableCell
}

// TimetableGrid has one column per day in the response and always the four
// fixed time rows.
type TimetableGrid struct {
	Days []string
	Rows []TimetableRow
}

func orUnassigned(s *string) string {
	if s == nil || *s == "" {
		return Unassigned
	}
	return *s
}

// BuildTimetableGrid pivots the day to label mapping into rows.
func BuildTimetableGrid(tt models.Timetable) TimetableGrid {
	grid := TimetableGrid{Days: tt.Days()}
	for _, label := range models.TimetableLabels() {
		row := TimetableRow{Label: label, Cells: make([]TimetableCell, 0, len(grid.Days))}
		for _, day := range grid.Days {
			cell := TimetableCell{Day: day}
			for _, e := range tt.Cell(day, label) {
				cell.Entries = append(cell.Entries, TimetableLine{
					Room:    orUnassigned(e.Room),
					Course:  orUnassigned(e.Course),
					Teacher: orUnassigned(e.Teacher),
				})
			}
			row.Cells = append(row.Cells, cell)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// TimetablePage shows one user's week. Failures are only logged; the page
// then stays in its loading state.
type TimetablePage struct {
	UserID int64
	Grid   *TimetableGrid

	api    client.API
	store  *store.Store
	logger *zap.Logger
}

func NewTimetablePage(userID int64, api client.API, st *store.Store, logger *zap.Logger) *TimetablePage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetablePage{UserID: userID, api: api, store: st, logger: logger}
}

func (p *TimetablePage) Load(ctx context.Context) error {
	key := store.Key{Kind: store.KindTimetable, Scope: strconv.FormatInt(p.UserID, 10)}
	tt, err := store.Fetch(ctx, p.store, key, func(ctx context.Context) (models.Timetable, error) {
		var resp models.TimetableResponse
		if err := p.api.GetJSON(ctx, fmt.Sprintf("/api/users/%d/timetable", p.UserID), nil, &resp); err != nil {
			return nil, err
		}
		if resp.Timetable == nil {
			resp.Timetable = models.Timetable{}
		}
		return resp.Timetable, nil
	})
	if err != nil {
		p.logger.Error("timetable fetch failed", zap.Int64("user_id", p.UserID), zap.Error(err))
		empty := BuildTimetableGrid(models.Timetable{})
		p.Grid = &empty
		return err
	}
	grid := BuildTimetableGrid(tt)
	p.Grid = &grid
	return nil
}

// ExportLinks point at the console download route of each format.
func (p *TimetablePage) ExportLinks() []crud.Link {
	links := make([]crud.Link, 0, 3)
	for _, format := range []string{"csv", "pdf", "xlsx"} {
		links = append(links, crud.Link{
			Label: "Export " + format,
			Href:  fmt.Sprintf("/timetable/%d/export?format=%s", p.UserID, format),
		})
	}
	return links
}
