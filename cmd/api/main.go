package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"noteapi/internal/config"
	"noteapi/internal/database"
	"noteapi/internal/database/migration"
	handlers "noteapi/internal/http/handler"
	"noteapi/internal/http/middleware"
	"noteapi/internal/logger"
	"noteapi/internal/otel"
	"noteapi/internal/repository/postgres"
	"noteapi/internal/service"
	"noteapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if
	// present).
	cfg := config.Load()
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	zlog := logger.New()
	defer zlog.Sync()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(ctx)

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, zlog); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		zlog.Fatal("failed to initialize object storage", zap.Error(err))
	}

	folderRepo := postgres.NewFolderPostgres(db)
	noteRepo := postgres.NewNotePostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	attRepo := postgres.NewAttachmentPostgres(db)

	svcs := handlers.Services{
		Users:       service.NewUserService(userRepo, []byte(cfg.JWT.Secret), cfg.JWT.TokenTTL),
		Folders:     service.NewFolderService(folderRepo, noteRepo),
		Notes:       service.NewNoteService(folderRepo, noteRepo),
		Attachments: service.NewAttachmentService(objStore, folderRepo, noteRepo, attRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		ReadTimeout:  30 * time.Second,
	})

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		zlog.Fatal("failed to register metrics", zap.Error(err))
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(zlog))
	app.Use(otelfiber.Middleware())
	app.Use(promMW.Handler())

	handlers.RegisterRoutes(app, db, []byte(cfg.JWT.Secret), svcs)

	addr := ":" + cfg.Port
	zlog.Info("listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
