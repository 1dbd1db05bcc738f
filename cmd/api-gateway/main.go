package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/spacesync-api/api/swagger"
	"github.com/noah-isme/spacesync-api/internal/handler"
	"github.com/noah-isme/spacesync-api/internal/middleware"
	"github.com/noah-isme/spacesync-api/internal/repository"
	"github.com/noah-isme/spacesync-api/internal/seed"
	"github.com/noah-isme/spacesync-api/internal/service"
	"github.com/noah-isme/spacesync-api/pkg/cache"
	"github.com/noah-isme/spacesync-api/pkg/config"
	"github.com/noah-isme/spacesync-api/pkg/database"
	"github.com/noah-isme/spacesync-api/pkg/jobs"
	"github.com/noah-isme/spacesync-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/spacesync-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/spacesync-api/pkg/middleware/requestid"
	"github.com/noah-isme/spacesync-api/pkg/storage"
)

// @title SpaceSync API
// @version 1.0.0
// @description Campus room status, maintenance and lost-and-found service
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		cacheSvc = service.NewCacheService(repository.NewCacheRepository(client), metrics, cfg.Cache.ScheduleTTL, logr, true)
	} else {
		cacheSvc = service.NewCacheService(nil, metrics, 0, logr, false)
	}

	var (
		archiveQueue *jobs.Queue
		archiveStore *storage.Archive
	)
	if cfg.Export.ArchiveEnabled {
		archiveStore, err = storage.NewArchive(cfg.Export.ArchiveDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to open export archive", "error", err)
		}
		archiveQueue = jobs.NewQueue("export-archive", func(ctx context.Context, task jobs.Task) error {
			doc, ok := task.Payload.(*service.ExportDocument)
			if !ok {
				return fmt.Errorf("unexpected payload for task %s", task.ID)
			}
			name, err := archiveStore.Save(doc.Filename, doc.Content)
			if err != nil {
				return err
			}
			logr.Sugar().Infow("export archived", "file", name)
			return nil
		}, jobs.QueueConfig{Workers: 1, Logger: logr})
		archiveQueue.Start(context.Background())
		defer archiveQueue.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		scheduleSvc    *service.ScheduleService
		roomSvc        *service.RoomService
		maintenanceSvc *service.MaintenanceService
		lostFoundSvc   *service.LostFoundService
		exportSvc      *service.ExportService
		readiness      func(c *gin.Context)
	)

	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect database", "error", err)
		}

		roomRepo := repository.NewRoomRepository(db)
		schedRepo := repository.NewScheduleRepository(db)
		maintRepo := repository.NewMaintenanceRepository(db)
		itemRepo := repository.NewLostFoundRepository(db)

		roomCount, err := roomRepo.CountRooms(ctx)
		if err != nil {
			logr.Sugar().Fatalw("failed to inspect room registry", "error", err)
		}
		schedCount, err := schedRepo.CountSchedules(ctx)
		if err != nil {
			logr.Sugar().Fatalw("failed to inspect schedule table", "error", err)
		}
		if roomCount == 0 || schedCount == 0 {
			// the layout is deterministic for a given seed config, so
			// schedules generated on a later boot still reference the room
			// ids written on an earlier one
			rooms, schedules, _ := seed.Building(cfg.Seed, time.Now())
			if roomCount == 0 {
				if err := roomRepo.BulkCreateRooms(ctx, rooms); err != nil {
					logr.Sugar().Fatalw("failed to seed rooms", "error", err)
				}
			}
			if schedCount == 0 {
				if err := schedRepo.BulkCreateSchedules(ctx, schedules); err != nil {
					logr.Sugar().Fatalw("failed to seed schedules", "error", err)
				}
			}
			logr.Sugar().Infow("seeded building layout", "rooms", len(rooms), "schedules", len(schedules))
		}

		scheduleSvc = service.NewScheduleService(schedRepo, cacheSvc, cfg.Cache.ScheduleTTL, logr)
		roomSvc = service.NewRoomService(roomRepo, scheduleSvc, cacheSvc, cfg.Cache.AuditTTL, validate, logr, nil)
		maintenanceSvc = service.NewMaintenanceService(maintRepo, validate, logr)
		lostFoundSvc = service.NewLostFoundService(itemRepo, validate, logr)
		exportSvc = service.NewExportService(roomRepo, archiveQueue, archiveStore, logr, nil)

		readiness = func(c *gin.Context) {
			if err := db.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		}

	default:
		store := repository.NewMemoryStore(cfg.Store.SimulatedDelay, nil)
		rooms, schedules, items := seed.Building(cfg.Seed, time.Now())
		if err := store.Seed(ctx, rooms, schedules, items); err != nil {
			logr.Sugar().Fatalw("failed to seed memory store", "error", err)
		}
		logr.Sugar().Infow("seeded building layout", "rooms", len(rooms), "schedules", len(schedules), "lost_items", len(items))

		scheduleSvc = service.NewScheduleService(store, cacheSvc, cfg.Cache.ScheduleTTL, logr)
		roomSvc = service.NewRoomService(store, scheduleSvc, cacheSvc, cfg.Cache.AuditTTL, validate, logr, nil)
		maintenanceSvc = service.NewMaintenanceService(store, validate, logr)
		lostFoundSvc = service.NewLostFoundService(store, validate, logr)
		exportSvc = service.NewExportService(store, archiveQueue, archiveStore, logr, nil)

		readiness = func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		}
	}

	roomHandler := handler.NewRoomHandler(roomSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	auditHandler := handler.NewAuditHandler(roomSvc, exportSvc)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceSvc)
	lostFoundHandler := handler.NewLostFoundHandler(lostFoundSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Actor())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", readiness)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/floors", roomHandler.ListFloors)
		api.GET("/rooms/:id", roomHandler.Get)
		api.GET("/rooms/:id/schedules", scheduleHandler.ListByRoom)
		api.GET("/rooms/:id/maintenance", maintenanceHandler.ListByRoom)
		api.POST("/rooms/:id/maintenance", maintenanceHandler.Report)
		api.GET("/lost-found", lostFoundHandler.List)
		api.POST("/lost-found", lostFoundHandler.Report)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.PUT("/rooms/:id/override", roomHandler.SetOverride)
			admin.GET("/audit-logs", auditHandler.List)
			admin.GET("/audit-logs/export", auditHandler.Export)
			admin.GET("/audit-logs/archives", auditHandler.Archives)
			admin.PATCH("/maintenance/:id/status", maintenanceHandler.UpdateStatus)
			admin.PATCH("/lost-found/:id/resolve", lostFoundHandler.Resolve)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
