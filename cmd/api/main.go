package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"blogapi/docs"
	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/database/migration"
	handlers "blogapi/internal/http/handler"
	"blogapi/internal/http/middleware"
	"blogapi/internal/logger"
	"blogapi/internal/otel"
	"blogapi/internal/repository/postgres"
	"blogapi/internal/service"
	"blogapi/internal/storage"
)

// @title Blog API
// @version 1.0
// @description Articles with comments, cascade delete and snapshot export.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Location())
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Object storage is optional; without it the export endpoint answers 503.
	var objStore storage.Storage
	if cfg.MinIO.Enabled() {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal("failed to initialize object storage", zap.Error(err))
		}
	} else {
		log.Info("object storage disabled, article export unavailable")
	}

	articleRepo := postgres.NewArticlePostgres(db)
	commentRepo := postgres.NewCommentPostgres(db)
	articleSvc := service.NewArticleService(articleRepo, commentRepo)
	commentSvc := service.NewCommentService(articleSvc, commentRepo)
	exportSvc := service.NewExportService(articleSvc, objStore)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Name),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())
	app.Use(middleware.Timeout(cfg.RequestTimeout()))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, db, articleSvc, commentSvc, exportSvc)

	handlers.RegisterDocs(app, docs.SwaggerInfo, cfg.AppHost, cfg.AppScheme)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server starting", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
