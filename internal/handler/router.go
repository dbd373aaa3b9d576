package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/middleware"
	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/internal/service"
	"github.com/noah-isme/sma-room-console/pkg/config"
	"github.com/noah-isme/sma-room-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-room-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-room-console/pkg/middleware/requestid"
)

// RouterDeps collects everything the REST router mounts.
type RouterDeps struct {
	Logger     *zap.Logger
	CORS       config.CORSConfig
	APIPrefix  string
	EnableDocs bool

	Metrics *service.MetricsService
	Tokens  middleware.TokenValidator
	Audit   middleware.AuditRecorder

	Auth      *AuthHandler
	Buildings *BuildingHandler
	Rooms     *RoomHandler
	Courses   *CourseHandler
	Users     *UserHandler
	Schedules *ScheduleHandler
	Submits   *SubmitHandler
	Dashboard *DashboardHandler
	Ops       *MetricsHandler
}

// NewRouter builds the gin engine. Reads need a bearer token; mutations need the admin role.
func NewRouter(d RouterDeps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.APIPrefix == "" {
		d.APIPrefix = "/api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.CORS))
	r.Use(middleware.Metrics(d.Metrics))

	r.GET("/health", d.Ops.Health)
	r.GET("/ready", d.Ops.Ready)
	r.GET("/metrics", d.Ops.Prometheus)
	if d.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(d.APIPrefix)
	api.POST("/auth/login", middleware.Audit(d.Audit, models.AuditActionLogin, "auth"), d.Auth.Login)

	authed := api.Group("", middleware.JWT(d.Tokens))
	admin := authed.Group("", middleware.AdminOnly())

	authed.GET("/dashboard", d.Dashboard.Counts)
	authed.GET("/submits", d.Submits.List)

	mountCRUD(authed, admin, d.Audit, "/buildings", "building", d.Buildings.List, d.Buildings.Create, d.Buildings.Update, d.Buildings.Delete)
	mountCRUD(authed, admin, d.Audit, "/rooms", "room", d.Rooms.List, d.Rooms.Create, d.Rooms.Update, d.Rooms.Delete)
	mountCRUD(authed, admin, d.Audit, "/courses", "course", d.Courses.List, d.Courses.Create, d.Courses.Update, d.Courses.Delete)
	mountCRUD(authed, admin, d.Audit, "/users", "user", d.Users.List, d.Users.Create, d.Users.Update, d.Users.Delete)
	mountCRUD(authed, admin, d.Audit, "/schedules", "schedule", d.Schedules.List, d.Schedules.Create, d.Schedules.Update, d.Schedules.Delete)

	authed.GET("/users/:id/timetable", d.Users.Timetable)
	authed.GET("/users/:id/timetable/export", d.Users.ExportTimetable)
	authed.GET("/schedules/:id", d.Schedules.ListByRoom)

	return r
}

func mountCRUD(read, write *gin.RouterGroup, audit middleware.AuditRecorder, path, resource string, list, create, update, remove gin.HandlerFunc) {
	read.GET(path, list)
	write.POST(path, middleware.Audit(audit, models.AuditActionCreate, resource), create)
	write.PATCH(path+"/:id", middleware.Audit(audit, models.AuditActionUpdate, resource), update)
	write.DELETE(path+"/:id", middleware.Audit(audit, models.AuditActionDelete, resource), remove)
}
