package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/crud"
	"github.com/noah-isme/sma-room-console/internal/console/pages"
)

// entityPage is the surface shared by the crud controllers and the pages
// wrapping them.
type entityPage interface {
	Load(ctx context.Context) error
	Table() crud.Table
	Notices() []crud.Notice
	OpenCreate()
	OpenEdit(id int64) bool
	CloseDialog()
	SubmitValues(ctx context.Context, values url.Values) error
	AskDelete(id int64)
	CancelDelete()
	ConfirmDelete(ctx context.Context) error
}

type pickPage func(c *gin.Context, ws *pages.Workspace) (entityPage, bool)

// mountEntity registers the list, dialog and delete routes of one page.
// Every mutation redirects back to the list.
func mountEntity(r *gin.RouterGroup, s *Server, base, itemParam string, pick pickPage) {
	with := func(act func(c *gin.Context, sess *Session, page entityPage) error) gin.HandlerFunc {
		return func(c *gin.Context) {
			sess := sessionOf(c)
			page, ok := pick(c, sess.State)
			if !ok {
				c.Redirect(http.StatusFound, "/")
				return
			}
			if err := act(c, sess, page); err != nil && s.unauthorized(c, sess, err) {
				return
			}
			if c.Writer.Written() {
				return
			}
			c.Redirect(http.StatusFound, page.Table().BasePath)
		}
	}
	item := func(c *gin.Context) (int64, bool) { return pathID(c, itemParam) }

	r.GET(base, func(c *gin.Context) {
		sess := sessionOf(c)
		page, ok := pick(c, sess.State)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			return
		}
		if err := page.Load(c.Request.Context()); err != nil && s.unauthorized(c, sess, err) {
			return
		}
		table := page.Table()
		s.render(c, sess, "entity.html", table.Title, page.Notices(), table)
	})
	r.GET(base+"/new", with(func(c *gin.Context, _ *Session, page entityPage) error {
		page.OpenCreate()
		return nil
	}))
	r.GET(base+"/edit/:"+itemParam, with(func(c *gin.Context, _ *Session, page entityPage) error {
		id, ok := item(c)
		if !ok {
			return nil
		}
		err := page.Load(c.Request.Context())
		page.OpenEdit(id)
		return err
	}))
	r.POST(base, with(func(c *gin.Context, _ *Session, page entityPage) error {
		if err := c.Request.ParseForm(); err != nil {
			return err
		}
		return page.SubmitValues(c.Request.Context(), c.Request.PostForm)
	}))
	r.POST(base+"/close", with(func(c *gin.Context, _ *Session, page entityPage) error {
		page.CloseDialog()
		return nil
	}))
	r.POST(base+"/delete/:"+itemParam, with(func(c *gin.Context, _ *Session, page entityPage) error {
		if id, ok := item(c); ok {
			page.AskDelete(id)
		}
		return nil
	}))
	r.POST(base+"/delete-confirm", with(func(c *gin.Context, _ *Session, page entityPage) error {
		return page.ConfirmDelete(c.Request.Context())
	}))
	r.POST(base+"/delete-cancel", with(func(c *gin.Context, _ *Session, page entityPage) error {
		page.CancelDelete()
		return nil
	}))
}

func (s *Server) dashboard(c *gin.Context) {
	sess := sessionOf(c)
	page := sess.State.Dashboard
	if err := page.Load(c.Request.Context()); err != nil && s.unauthorized(c, sess, err) {
		return
	}
	s.render(c, sess, "dashboard.html", "Dashboard", nil, page)
}

func (s *Server) timetable(c *gin.Context) {
	sess := sessionOf(c)
	userID, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/user")
		return
	}
	page := sess.State.Timetable(userID)
	if err := page.Load(c.Request.Context()); err != nil && s.unauthorized(c, sess, err) {
		return
	}
	s.render(c, sess, "timetable.html", "Timetable", nil, page)
}

// exportTimetable relays the API export so the browser never sees the token.
func (s *Server) exportTimetable(c *gin.Context) {
	sess := sessionOf(c)
	userID, ok := pathID(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/user")
		return
	}
	query := url.Values{}
	query.Set("format", c.DefaultQuery("format", "csv"))

	file, err := s.api.WithToken(sess.Token).Download(c.Request.Context(), fmt.Sprintf("/api/users/%d/timetable/export", userID), query)
	if err != nil {
		if s.unauthorized(c, sess, err) {
			return
		}
		s.logger.Error("timetable export failed", zap.Int64("user_id", userID), zap.Error(err))
		c.Redirect(http.StatusFound, "/timetable/"+itoa(userID))
		return
	}
	if file.Filename != "" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	}
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

func (s *Server) submits(c *gin.Context) {
	sess := sessionOf(c)
	page := sess.State.Submits
	if err := page.Load(c.Request.Context(), pages.ParseSubmitFilter(c.Request.URL.Query())); err != nil && s.unauthorized(c, sess, err) {
		return
	}
	s.render(c, sess, "submit.html", "Submits", page.Notices(), page)
}
