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

	"github.com/noah-isme/sma-room-console/internal/console/client"
	"github.com/noah-isme/sma-room-console/internal/console/web"
	"github.com/noah-isme/sma-room-console/internal/service"
	"github.com/noah-isme/sma-room-console/pkg/config"
	"github.com/noah-isme/sma-room-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg, "console")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService("room_console")
	api := client.New(client.Config{
		BaseURL: cfg.Console.APIBaseURL,
		Timeout: cfg.Console.APITimeout,
		Metrics: metrics,
		Logger:  logr,
	})
	sessions := web.NewSessions(cfg.Console, api, logr)
	go sessions.Run(ctx, time.Minute)

	server, err := web.NewServer(web.Deps{
		Config:   cfg.Console,
		API:      api,
		Sessions: sessions,
		Metrics:  metrics,
		Logger:   logr,
	})
	if err != nil {
		logr.Fatal("build console", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Console.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("console listening", zap.String("addr", srv.Addr), zap.String("api", cfg.Console.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down console")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
