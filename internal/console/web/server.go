// Package web serves the console HTML over gin.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/client"
	"github.com/noah-isme/sma-room-console/internal/console/pages"
	"github.com/noah-isme/sma-room-console/internal/console/session"
	"github.com/noah-isme/sma-room-console/internal/handler"
	"github.com/noah-isme/sma-room-console/internal/middleware"
	"github.com/noah-isme/sma-room-console/internal/service"
	"github.com/noah-isme/sma-room-console/pkg/config"
	"github.com/noah-isme/sma-room-console/pkg/logger"
	reqidmiddleware "github.com/noah-isme/sma-room-console/pkg/middleware/requestid"
)

//go:embed templates/*.html
var templateFS embed.FS

// Sessions is the session manager the console runs with; every login gets
// its own page workspace.
type Sessions = session.Manager[*pages.Workspace]

// Session is one logged-in console operator.
type Session = session.Session[*pages.Workspace]

// NewSessions builds the manager whose workspaces call the API with the
// token of their login.
func NewSessions(cfg config.ConsoleConfig, api *client.Client, log *zap.Logger) *Sessions {
	opts := pages.Options{StoreTTL: cfg.StoreTTL, SchedulePrecheck: cfg.SchedulePrecheck}
	return session.NewManager(session.Options{
		IdleTTL:  cfg.SessionIdleTTL,
		Fallback: cfg.SessionFallback,
		Logger:   log,
	}, func(token string) *pages.Workspace {
		return pages.NewWorkspace(api.WithToken(token), opts, log)
	})
}

// Deps collects what the console server needs.
type Deps struct {
	Config   config.ConsoleConfig
	API      *client.Client
	Sessions *Sessions
	Metrics  *service.MetricsService
	Logger   *zap.Logger
}

type Server struct {
	cfg      config.ConsoleConfig
	api      *client.Client
	sessions *Sessions
	logger   *zap.Logger
	engine   *gin.Engine
}

func NewServer(d Deps) (*Server, error) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Config.CookieName == "" {
		d.Config.CookieName = "console_session"
	}
	if d.Config.SessionSecret == "" {
		d.Config.SessionSecret = "dev_console_secret"
	}
	if d.Sessions == nil {
		d.Sessions = NewSessions(d.Config, d.API, d.Logger)
	}

	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: d.Config, api: d.API, sessions: d.Sessions, logger: d.Logger}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(sessions.Sessions(d.Config.CookieName, newCookieStore(d.Config)))
	r.SetHTMLTemplate(tmpl)

	ops := handler.NewMetricsHandler(d.Metrics, nil)
	r.GET("/health", ops.Health)
	r.GET("/metrics", ops.Prometheus)

	r.GET("/login", s.loginForm)
	r.POST("/login", s.login)

	authed := r.Group("", s.requireSession)
	authed.GET("/logout", s.logoutConfirm)
	authed.POST("/logout", s.logout)
	authed.POST("/ui/sidebar", s.toggleSidebar)
	authed.GET("/", s.dashboard)
	authed.GET("/submit", s.submits)
	authed.GET("/timetable/:id", s.timetable)
	authed.GET("/timetable/:id/export", s.exportTimetable)

	mountEntity(authed, s, "/building", "id", func(c *gin.Context, ws *pages.Workspace) (entityPage, bool) { return ws.Buildings, true })
	mountEntity(authed, s, "/course", "id", func(c *gin.Context, ws *pages.Workspace) (entityPage, bool) { return ws.Courses, true })
	mountEntity(authed, s, "/user", "id", func(c *gin.Context, ws *pages.Workspace) (entityPage, bool) { return ws.Users, true })
	mountEntity(authed, s, "/room", "id", func(c *gin.Context, ws *pages.Workspace) (entityPage, bool) { return ws.Rooms, true })
	mountEntity(authed, s, "/assign/:id", "sid", func(c *gin.Context, ws *pages.Workspace) (entityPage, bool) {
		roomID, ok := pathID(c, "id")
		if !ok {
			return nil, false
		}
		return ws.Assign(roomID), true
	})

	r.NoRoute(s.notFound)

	s.engine = r
	return s, nil
}

// newCookieStore signs the cookie that carries the session id. Per-login
// lifetimes are set when the id is saved.
func newCookieStore(cfg config.ConsoleConfig) cookie.Store {
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionFallback.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Handler returns the http.Handler to serve.
func (s *Server) Handler() http.Handler { return s.engine }
