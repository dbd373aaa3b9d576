package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-room-console/api/swagger"
	"github.com/noah-isme/sma-room-console/internal/handler"
	"github.com/noah-isme/sma-room-console/internal/repository"
	"github.com/noah-isme/sma-room-console/internal/scheduling"
	"github.com/noah-isme/sma-room-console/internal/service"
	"github.com/noah-isme/sma-room-console/migrations"
	"github.com/noah-isme/sma-room-console/pkg/cache"
	"github.com/noah-isme/sma-room-console/pkg/config"
	"github.com/noah-isme/sma-room-console/pkg/database"
	"github.com/noah-isme/sma-room-console/pkg/logger"
)

// @title Room Scheduling API
// @version 1.0.0
// @description REST backend for buildings, rooms, courses, users, schedules and submissions.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg, "api-server")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("connect database", zap.Error(err))
	}
	defer db.Close()

	scripts, err := migrations.Scripts()
	if err != nil {
		logr.Fatal("load migrations", zap.Error(err))
	}
	if err := database.Migrate(ctx, db, scripts...); err != nil {
		logr.Fatal("apply migrations", zap.Error(err))
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	metrics := service.NewMetricsService("room_api")
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	userRepo := repository.NewUserRepository(db)
	buildingRepo := repository.NewBuildingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	submitRepo := repository.NewSubmitRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	validate := service.NewValidator()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, cacheSvc, validate, logr)
	buildingSvc := service.NewBuildingService(buildingRepo, cacheSvc, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, cacheSvc, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, validate, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, cacheSvc, scheduling.FromConfig(cfg.Schedule), logr)
	timetableSvc := service.NewTimetableService(scheduleRepo, userRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(timetableSvc, nil, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	submitSvc := service.NewSubmitService(submitRepo, logr)
	auditSvc := service.NewAuditService(auditRepo, metrics, service.AuditConfig{
		Enabled:    cfg.Audit.Enabled,
		Workers:    cfg.Audit.Workers,
		MaxRetries: cfg.Audit.MaxRetries,
		RetryDelay: time.Second,
	}, logr)

	created, err := userSvc.EnsureAdmin(ctx, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
	if err != nil {
		logr.Fatal("bootstrap admin", zap.Error(err))
	}
	if created {
		logr.Info("bootstrap admin created", zap.String("email", cfg.Bootstrap.AdminEmail))
	}

	auditSvc.Start(ctx)
	defer auditSvc.Stop()

	router := handler.NewRouter(handler.RouterDeps{
		Logger:     logr,
		CORS:       cfg.CORS,
		APIPrefix:  cfg.APIPrefix,
		EnableDocs: cfg.Env != config.EnvProduction,
		Metrics:    metrics,
		Tokens:     authSvc,
		Audit:      auditSvc,
		Auth:       handler.NewAuthHandler(authSvc),
		Buildings:  handler.NewBuildingHandler(buildingSvc),
		Rooms:      handler.NewRoomHandler(roomSvc),
		Courses:    handler.NewCourseHandler(courseSvc),
		Users:      handler.NewUserHandler(userSvc, timetableSvc, exportSvc),
		Schedules:  handler.NewScheduleHandler(scheduleSvc),
		Submits:    handler.NewSubmitHandler(submitSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Ops:        handler.NewMetricsHandler(metrics, db),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
