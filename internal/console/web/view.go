package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-room-console/internal/console/crud"
	"github.com/noah-isme/sma-room-console/internal/models"
)

type menuItem struct {
	Key    string
	Label  string
	Active bool
}

var menu = []menuItem{
	{Key: "/", Label: "Dashboard"},
	{Key: "/building", Label: "Buildings"},
	{Key: "/room", Label: "Rooms"},
	{Key: "/course", Label: "Courses"},
	{Key: "/user", Label: "Users"},
	{Key: "/submit", Label: "Submits"},
}

// view is the data every template receives. Page holds the page specific model.
type view struct {
	Title     string
	Path      string
	User      models.UserInfo
	Collapsed bool
	Menu      []menuItem
	Notices   []crud.Notice
	Error     string
	Page      interface{}
}

func (s *Server) render(c *gin.Context, sess *Session, name, title string, notices []crud.Notice, page interface{}) {
	v := view{Title: title, Path: c.Request.URL.Path, Notices: notices, Page: page}
	if sess != nil {
		v.User = sess.User
		v.Collapsed = sess.SidebarCollapsed
		v.Menu = make([]menuItem, len(menu))
		for i, item := range menu {
			item.Active = item.Key == v.Path
			v.Menu[i] = item
		}
	}
	c.HTML(http.StatusOK, name, v)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := models.ParseID(c.Param(name))
	return id, err == nil
}

// localPath keeps redirects on this host.
func localPath(raw, fallback string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	return raw
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
