package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"telecom_assets/internal/config"
	"telecom_assets/internal/handler"
	"telecom_assets/internal/logger"
	"telecom_assets/internal/metrics"
	"telecom_assets/internal/repository"
	"telecom_assets/internal/service"
	"telecom_assets/internal/session"
	"telecom_assets/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Encoding, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool, zlog); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// --- Session revocation ---
	var revoked session.RevocationStore = session.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Fatal("failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		revoked = session.NewRedisStore(rdb)
		zlog.Info("logout revocation stored in redis", zap.String("addr", cfg.Redis.Addr))
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.Session.Secret, cfg.Session.TTL)
	appMetrics := metrics.New("telecom")

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	lineRepo := repository.NewLineRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil, revoked, appMetrics, zlog)
	lineService := service.NewLineService(lineRepo, appMetrics, zlog)
	userService := service.NewUserService(userRepo, appMetrics, zlog)
	dashboardService := service.NewDashboardService(lineRepo)
	exportService := service.NewExportService(lineRepo, appMetrics)
	healthService := service.NewHealthService(dbPool, lineRepo, userRepo)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Password); err != nil {
		zlog.Fatal("failed to seed admin user", zap.Error(err))
	}

	// --- Setup Gin Router ---
	router, err := handler.NewRouter(handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, cfg.Session.TTL, cfg.Session.SecureCookies, zlog),
		Lines:     handler.NewLineHandler(lineService, zlog),
		Exports:   handler.NewExportHandler(exportService, zlog),
		Users:     handler.NewUserHandler(userService, zlog),
		Dashboard: handler.NewDashboardHandler(dashboardService, zlog),
		Health:    handler.NewHealthHandler(healthService, zlog),
	}, handler.RouterOptions{
		Secret:        cfg.Session.Secret,
		SecureCookies: cfg.Session.SecureCookies,
		Authenticator: authService,
		Metrics:       appMetrics,
		Logger:        zlog,
	})
	if err != nil {
		zlog.Fatal("failed to build router", zap.Error(err))
	}

	var root http.Handler = router
	if cfg.HTTP.CSRFEnabled {
		root = handler.WithCSRF(router, cfg.Session.Secret, cfg.Session.SecureCookies, zlog)
	}

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: root,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.HTTP.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("listen failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	zlog.Info("server exiting")
}
