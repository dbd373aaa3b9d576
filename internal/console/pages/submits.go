package pages

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/client"
	"github.com/noah-isme/sma-room-console/internal/console/crud"
	"github.com/noah-isme/sma-room-console/internal/console/store"
	"github.com/noah-isme/sma-room-console/internal/models"
)

const dateLayout = "2006-01-02"

// SubmitFilter mirrors the query of GET /api/submits. Zero values are omitted.
type SubmitFilter struct {
	Page      int
	UserID    int64
	StartDate string
	EndDate   string
}

// ParseSubmitFilter reads the console query string, dropping malformed values.
func ParseSubmitFilter(values url.Values) SubmitFilter {
	f := SubmitFilter{Page: 1}
	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		f.Page = n
	}
	if id, err := models.ParseID(values.Get("user_id")); err == nil {
		f.UserID = id
	}
	for _, pair := range []struct {
		key string
		dst *string
	}{{"start_date", &f.StartDate}, {"end_date", &f.EndDate}} {
		raw := strings.TrimSpace(values.Get(pair.key))
		if _, err := time.Parse(dateLayout, raw); err == nil {
			*pair.dst = raw
		}
	}
	return f
}

func (f SubmitFilter) Query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.UserID > 0 {
		q.Set("user_id", strconv.FormatInt(f.UserID, 10))
	}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	return q
}

// WithPage returns the console URL of another page under the same filter.
func (f SubmitFilter) WithPage(page int) string {
	f.Page = page
	return "/submit?" + f.Query().Encode()
}

type PageLink struct {
	Number  int
	Href    string
	Current bool
}

type noticeQueue struct {
	notices []crud.Notice
}

func (q *noticeQueue) Notify(level, text string) {
	q.notices = append(q.notices, crud.Notice{Level: level, Text: text})
}

func (q *noticeQueue) Notices() []crud.Notice {
	out := q.notices
	q.notices = nil
	return out
}

// SubmitsPage lists submissions. A failed fetch keeps the last page shown.
type SubmitsPage struct {
	noticeQueue
	Filter SubmitFilter
	Result *models.SubmitPage

	api    client.API
	store  *store.Store
	logger *zap.Logger
	users  []models.User
}

func NewSubmitsPage(api client.API, st *store.Store, logger *zap.Logger) *SubmitsPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitsPage{Filter: SubmitFilter{Page: 1}, api: api, store: st, logger: logger}
}

func (p *SubmitsPage) Load(ctx context.Context, filter SubmitFilter) error {
	p.Filter = filter

	users, userErr := fetchList[models.User](ctx, p.api, p.store, store.Key{Kind: store.KindUsers}, "/api/users")
	if userErr != nil {
		p.logger.Warn("user options fetch failed", zap.Error(userErr))
		p.Notify(crud.LevelError, "Failed to fetch users")
	} else {
		p.users = users
	}

	query := filter.Query()
	page, err := store.Fetch(ctx, p.store, store.Key{Kind: store.KindSubmits, Scope: query.Encode()}, func(ctx context.Context) (*models.SubmitPage, error) {
		var out models.SubmitPage
		if err := p.api.GetJSON(ctx, "/api/submits", query, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		p.logger.Warn("submits fetch failed", zap.Error(err))
		p.Notify(crud.LevelError, "Failed to fetch submits")
		return err
	}
	p.Result = page
	return userErr
}

func (p *SubmitsPage) UserOptions() []crud.Option {
	selected := ""
	if p.Filter.UserID > 0 {
		selected = strconv.FormatInt(p.Filter.UserID, 10)
	}
	options := make([]crud.Option, 0, len(p.users))
	for _, u := range p.users {
		o := crud.IDOption(u.ID, u.Name)
		o.Selected = o.Value == selected
		options = append(options, o)
	}
	return options
}

// Rows renders the current page as table cells.
func (p *SubmitsPage) Rows() [][]string {
	if p.Result == nil {
		return nil
	}
	rows := make([][]string, 0, len(p.Result.Data))
	for _, s := range p.Result.Data {
		building, room, user := "", "", ""
		if s.Room != nil {
			room = s.Room.Name
			if s.Room.Building != nil {
				building = s.Room.Building.Name
			}
		}
		if s.User != nil {
			user = s.User.Name
		}
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10), building, room, user,
			s.SubmittedDate.Format("2006-01-02 15:04"), s.Type, deref(s.Note),
		})
	}
	return rows
}

// Pages links every page of the current result.
// lastPage trusts last_page when the API sends it and otherwise derives it
// from total and per_page.
func (p *SubmitsPage) lastPage() int {
	if p.Result == nil {
		return 0
	}
	if p.Result.LastPage > 0 {
		return p.Result.LastPage
	}
	size := max(p.Result.PerPage, 10)
	return (p.Result.Total + size - 1) / size
}

func (p *SubmitsPage) Pages() []PageLink {
	last := p.lastPage()
	if last <= 1 {
		return nil
	}
	links := make([]PageLink, 0, last)
	for n := 1; n <= last; n++ {
		links = append(links, PageLink{Number: n, Href: p.Filter.WithPage(n), Current: n == p.Result.CurrentPage})
	}
	return links
}

// Summary is the "x of y" line under the table.
func (p *SubmitsPage) Summary() string {
	if p.Result == nil {
		return ""
	}
	return fmt.Sprintf("Page %d of %d, %d submits", p.Result.CurrentPage, p.lastPage(), p.Result.Total)
}
