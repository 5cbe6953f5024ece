package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ptm-api/config"
	"ptm-api/database"
	"ptm-api/msa"
	"ptm-api/services"
	"ptm-api/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx := context.Background()

	// Setup Database Connection
	db, err := database.Connect(ctx, cfg, logging)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.String("engine", cfg.DBEngine), zap.Error(err))
	}
	defer db.Close()
	logging.Info("Successfully connected to database.", zap.String("engine", cfg.DBEngine))

	// Setup Services
	ptmService := services.NewPTMService(db, logging)
	alignmentService := services.NewAlignmentService(ptmService, msa.NewAligner(cfg.MusclePath, logging), cfg.MSAWorkers, logging)

	var statsSource services.StatisticsSource = services.FileSource{Path: cfg.StatisticsFile}
	if cfg.S3Enabled() {
		bucket, err := storage.NewBucket(ctx, cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		statsSource = services.BucketSource{Bucket: bucket, Key: cfg.StatsS3Object}
	}
	statsService := services.NewStatisticsService(statsSource, logging)
	if err := statsService.Reload(ctx); err != nil {
		logging.Warn("Initial statistics load failed, retrying on first request", zap.Error(err))
	}

	router := newRouter(cfg, logging, ptmService, alignmentService, statsService)

	// Setup Cron
	cronScheduler := cron.New()
	_, err = cronScheduler.AddFunc(cfg.StatisticsCron, func() {
		logging.Info("Running scheduled statistics reload...")
		if err := statsService.Reload(context.Background()); err != nil {
			logging.Error("Cron job failed", zap.Error(err))
		}
	})
	if err != nil {
		logging.Fatal("Invalid statistics cron schedule", zap.String("schedule", cfg.StatisticsCron), zap.Error(err))
	}
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func newRouter(cfg *config.Config, logging *zap.Logger, ptm *services.PTMService, aligner *services.AlignmentService, stats *services.StatisticsService) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware(logging))
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Routes
	setupStatusRoutes(router)
	setupEntryRoutes(router, ptm, logging)
	setupBatchRoutes(router, ptm, logging)
	setupStatisticsRoutes(router, stats, logging)
	setupMSARoutes(router, aligner, logging)
	return router
}
