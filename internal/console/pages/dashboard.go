package pages

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/client"
	"github.com/noah-isme/sma-room-console/internal/console/store"
	"github.com/noah-isme/sma-room-console/internal/models"
)

type Card struct {
	Title string
	Value int
}

// DashboardPage shows the six counters. A failed fetch is logged and leaves
// the page in its loading state.
type DashboardPage struct {
	Counts *models.DashboardCounts

	api    client.API
	store  *store.Store
	logger *zap.Logger
}

func NewDashboardPage(api client.API, st *store.Store, logger *zap.Logger) *DashboardPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardPage{api: api, store: st, logger: logger}
}

func (p *DashboardPage) Load(ctx context.Context) error {
	counts, err := store.Fetch(ctx, p.store, store.Key{Kind: store.KindDashboard}, func(ctx context.Context) (*models.DashboardCounts, error) {
		var c models.DashboardCounts
		if err := p.api.GetJSON(ctx, "/api/dashboard", nil, &c); err != nil {
			return nil, err
		}
		return &c, nil
	})
	if err != nil {
		p.logger.Error("dashboard fetch failed", zap.Error(err))
		p.Counts = nil
		return err
	}
	p.Counts = counts
	return nil
}

// Cards lists the counters in display order, or nil while loading.
func (p *DashboardPage) Cards() []Card {
	if p.Counts == nil {
		return nil
	}
	c := p.Counts
	return []Card{
		{Title: "Users", Value: c.UsersCount},
		{Title: "Schedules", Value: c.SchedulesCount},
		{Title: "Buildings", Value: c.BuildingsCount},
		{Title: "Courses", Value: c.CoursesCount},
		{Title: "Rooms", Value: c.RoomsCount},
		{Title: "Submits", Value: c.SubmitsCount},
	}
}
