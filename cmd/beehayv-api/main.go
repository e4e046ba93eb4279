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
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/beehayv/beehayv-api/api/swagger"
	"github.com/beehayv/beehayv-api/internal/handler"
	"github.com/beehayv/beehayv-api/internal/middleware"
	"github.com/beehayv/beehayv-api/internal/repository"
	"github.com/beehayv/beehayv-api/internal/service"
	"github.com/beehayv/beehayv-api/pkg/config"
	"github.com/beehayv/beehayv-api/pkg/export"
	"github.com/beehayv/beehayv-api/pkg/logger"
	corsmiddleware "github.com/beehayv/beehayv-api/pkg/middleware/cors"
	reqidmiddleware "github.com/beehayv/beehayv-api/pkg/middleware/requestid"
	"github.com/beehayv/beehayv-api/pkg/storage"
)

// @title Beehayv API
// @version 0.1.0
// @description Behavior tracking over flat files
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	store, err := repository.Open(cfg.Data.Dir, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open data store", "dir", cfg.Data.Dir, "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cfg.Analytics.CacheEnabled)

	subjectRepo := repository.NewSubjectRepository(store)
	definitionRepo := repository.NewDefinitionRepository(store)
	scoreRepo := repository.NewScoreRepository(store)
	averageRepo := repository.NewAverageRepository(store)
	tableRepo := repository.NewTableRepository(store)

	subjectSvc := service.NewSubjectService(subjectRepo, cacheSvc, validate, logr)
	definitionSvc := service.NewDefinitionService(definitionRepo, cacheSvc, validate, logr)
	scoreSvc := service.NewScoreService(scoreRepo, cacheSvc, validate, logr)
	aggregationSvc := service.NewAggregationService(scoreRepo, averageRepo, cacheSvc, metricsSvc, logr)
	tableSvc := service.NewTableService(tableRepo, logr)
	dashboardSvc := service.NewDashboardService(subjectRepo, definitionRepo, scoreRepo, averageRepo, cacheSvc, metricsSvc, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "dir", cfg.Exports.StorageDir, "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(tableRepo, fileStore, signer, service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.SignedURLTTL,
		}, validate, logr, export.NewCSVExporter(), export.NewPDFExporter())
	}

	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	definitionHandler := handler.NewDefinitionHandler(definitionSvc)
	scoreHandler := handler.NewScoreHandler(scoreSvc)
	averageHandler := handler.NewAverageHandler(aggregationSvc)
	tableHandler := handler.NewTableHandler(tableSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/subjects", subjectHandler.List)
		api.POST("/subjects", subjectHandler.Create)
		api.GET("/subjects/:id", subjectHandler.Get)

		api.GET("/definitions", definitionHandler.List)
		api.POST("/definitions", definitionHandler.Create)
		api.GET("/definitions/:id", definitionHandler.Get)

		api.GET("/scores", scoreHandler.List)
		api.POST("/scores", scoreHandler.Log)

		api.POST("/averages/recalculate", averageHandler.Recalculate)
		api.GET("/averages/weekly", averageHandler.Weekly)
		api.GET("/averages/monthly", averageHandler.Monthly)
		api.GET("/averages/semi-annual", averageHandler.SemiAnnual)
		api.GET("/averages/:period/series", averageHandler.Series)

		api.GET("/tables", tableHandler.List)
		api.GET("/tables/:name", tableHandler.View)

		if cfg.Dashboard.Enabled {
			api.GET("/dashboard", dashboardHandler.Overview)
		}

		if cfg.Exports.Enabled {
			api.POST("/exports", exportHandler.Create)
			api.GET("/export/:token", exportHandler.Download)
		}
	}

	if cfg.Exports.Enabled && exportSvc != nil {
		go runExportCleanup(exportSvc, cfg.Exports.CleanupInterval, logr)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}

func runExportCleanup(exportSvc *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		removed, err := exportSvc.Cleanup(0)
		if err != nil {
			logr.Warn("export cleanup failed", zap.Error(err))
			continue
		}
		if len(removed) > 0 {
			logr.Info("expired exports removed", zap.Int("count", len(removed)))
		}
	}
}
