package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/erp/exporter/internal/application/audit"
	"github.com/erp/exporter/internal/application/exports"
	"github.com/erp/exporter/internal/domain/provenance"
	"github.com/erp/exporter/internal/infrastructure/config"
	"github.com/erp/exporter/internal/infrastructure/logger"
	"github.com/erp/exporter/internal/infrastructure/persistence"
	"github.com/erp/exporter/internal/infrastructure/schedule"
	"github.com/erp/exporter/internal/infrastructure/unleashed"
	"github.com/erp/exporter/internal/interfaces/http/handler"
	"github.com/erp/exporter/internal/interfaces/http/middleware"
	"github.com/erp/exporter/internal/interfaces/http/router"
)

const maxRequestBody = 1 << 20

func main() {
	// Local development credentials live in .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting exporter",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("live_api", cfg.Unleashed.UseLiveAPI),
		zap.Bool("provenance_store", cfg.Database.Enabled),
	)

	var runRepo provenance.RunRepository
	var payloadRepo provenance.RawPayloadRepository
	if cfg.Database.Enabled {
		db, err := persistence.NewDatabase(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to provenance store", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		if err := db.Migrate(); err != nil {
			log.Fatal("Failed to migrate provenance tables", zap.Error(err))
		}
		runRepo = persistence.NewGormRunRepository(db.DB)
		payloadRepo = persistence.NewGormRawPayloadRepository(db.DB)
		log.Info("Provenance store connected")
	} else {
		log.Info("Provenance store disabled; runs and payloads will not be recorded")
	}

	client := unleashed.NewClient(&unleashed.Config{
		BaseURL:        cfg.Unleashed.BaseURL,
		APIID:          cfg.Unleashed.APIID,
		APIKey:         cfg.Unleashed.APIKey,
		ClientType:     cfg.Unleashed.ClientType,
		TimeoutSeconds: cfg.Unleashed.TimeoutSeconds,
	})

	tracker := audit.NewTracker(runRepo, log)
	var recorder *audit.Recorder
	if payloadRepo != nil {
		recorder = audit.NewRecorder(payloadRepo)
	}

	registry := exports.NewRegistry(client, recorder, cfg.Unleashed.UseLiveAPI, log)
	service := exports.NewService(registry, tracker, log)
	scheduleStore := schedule.NewStore(cfg.Schedule.Path)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS([]string{"*"}))
	engine.Use(middleware.BodyLimit(maxRequestBody))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NewRouter(engine).
		Register(handler.NewExportHandler(registry, service, cfg.Unleashed.CompanyID, handler.StatusInfo{
			BaseURL:    cfg.Unleashed.BaseURL,
			ClientType: cfg.Unleashed.ClientType,
		}, log)).
		Register(handler.NewScheduleHandler(scheduleStore, registry)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
