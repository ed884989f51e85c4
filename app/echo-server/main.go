package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"engagementReco/app/echo-server/metrics"
	"engagementReco/app/echo-server/router"
	"engagementReco/business/engagement"
	"engagementReco/business/recommendation"
	"engagementReco/domain"
	"engagementReco/internal/middleware"
	"engagementReco/internal/repository/cache"
	"engagementReco/internal/repository/spreadsheet"
	"engagementReco/internal/rest"
	"engagementReco/pkg/config"
	"engagementReco/pkg/logger"
	pkgmetrics "engagementReco/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting engagement dashboard", "version", cfg.App.Version, "dataset", cfg.Dataset.Path)

	pkgmetrics.Init()
	metrics.Init()

	table, err := recommendation.LoadTable(cfg.Dataset.RecommendationsFile)
	if err != nil {
		logger.Fatal("Failed to load recommendation table", "error", err)
	}
	resolver := recommendation.NewResolver(table)

	// Init repo
	loader := spreadsheet.NewLoader(spreadsheet.LoaderConfig{
		Path:  cfg.Dataset.Path,
		Sheet: cfg.Dataset.Sheet,
	})
	dataset := cache.NewDatasetCache(loader, func(rows []domain.UserRecord) []domain.UserRecord {
		return engagement.Derive(rows, resolver.Resolve)
	}, cfg.Dataset.Path)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Warm the cache; a failure here is reported by every dataset endpoint until the file is fixed.
	if _, err := dataset.Get(ctx); err != nil {
		logger.Error("Initial dataset load failed", "error", err)
	}

	if cfg.Dataset.Watch {
		watcher, err := cache.NewFileWatcher(cfg.Dataset.Path, dataset)
		if err != nil {
			logger.Fatal("Failed to create dataset watcher", "error", err)
		}
		if err := watcher.Start(ctx); err != nil {
			logger.Error("Failed to watch dataset file", "error", err)
		}
		defer watcher.Stop()
	}

	// Init service
	dashboardService := engagement.NewDashboardService(dataset, resolver)

	// Init handler
	dashboardHandler := rest.NewDashboardHandler(dashboardService, rest.DashboardSettings{
		Title:           cfg.Dashboard.Title,
		Intro:           cfg.Dashboard.Intro,
		ShowFilterPanel: cfg.Dashboard.ShowFilterPanel,
		ShowFooter:      cfg.Dashboard.ShowFooter,
		FooterCaption:   cfg.Dashboard.FooterCaption,
	})
	adminHandler := rest.NewDatasetAdminHandler(dashboardService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8501"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	router.SetupOpsRoutes(e)
	api := e.Group("/api/v1")
	router.SetupDashboardRoutes(api, dashboardHandler)
	if !router.SetDatasetAdminRoutes(api, adminHandler, cfg.JWT.SecretKey) {
		logger.Warn("JWT_SECRET not set, dataset admin routes disabled")
	}

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
