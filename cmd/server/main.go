package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appaccess "github.com/sis/backend/internal/application/access"
	appadmission "github.com/sis/backend/internal/application/admission"
	"github.com/sis/backend/internal/application/notification"
	appregistrar "github.com/sis/backend/internal/application/registrar"
	"github.com/sis/backend/internal/domain/access"
	"github.com/sis/backend/internal/infrastructure/auth"
	"github.com/sis/backend/internal/infrastructure/cache"
	"github.com/sis/backend/internal/infrastructure/config"
	"github.com/sis/backend/internal/infrastructure/logger"
	"github.com/sis/backend/internal/infrastructure/persistence"
	"github.com/sis/backend/internal/infrastructure/telemetry"
	"github.com/sis/backend/internal/interfaces/http/handler"
	"github.com/sis/backend/internal/interfaces/http/middleware"
	"github.com/sis/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; batch saves stay far below this
const maxBodyBytes = 1 << 20

func main() {
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

	log.Info("Starting registrar console backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if tracerProvider.IsEnabled() {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		if err := telemetry.NewDBTracingPlugin(dbTracing, log).RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	curriculumRepo := persistence.NewGormCurriculumRepository(db.DB)
	taggingRepo := persistence.NewGormProgramTaggingRepository(db.DB)
	courseRepo := persistence.NewGormCourseRepository(db.DB)
	pageAccessRepo := persistence.NewGormPageAccessRepository(db.DB)
	personRepo := persistence.NewGormPersonRepository(db.DB)

	// Application services
	notifications := notification.NewChannel(cfg.Console.NotificationTTL)
	catalogService := appregistrar.NewCatalogService(curriculumRepo, taggingRepo, log)
	feeEditor := appregistrar.NewFeeEditor(taggingRepo, catalogService, notifications, log)
	prereqEditor := appregistrar.NewPrereqEditor(courseRepo, catalogService, notifications, log)
	editorService := appregistrar.NewEditorService(catalogService, feeEditor, prereqEditor, taggingRepo, courseRepo, log)
	gateService := appaccess.NewGateService(pageAccessRepo, log)
	lookupService := appadmission.NewLookupService(personRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	idempotencyFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := idempotencyFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// HTTP engine and middleware chain
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins))
	engine.Use(middleware.BodyLimit(maxBodyBytes))
	engine.Use(middleware.JWTAuthMiddleware(jwtService))

	// Handlers
	handler.NewHealthHandler(db, cfg.App.Name).RegisterRoutes(engine)

	feeGuard := middleware.RequirePageAccess(gateService, access.PageCurriculumPayment)
	prereqGuard := middleware.RequirePageAccess(gateService, access.PageCoursePanel)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewCatalogHandler(catalogService))
	r.Register(handler.NewEditorHandler(editorService, idempotencyStore, cfg.Console.IdempotencyTTL, feeGuard, prereqGuard))
	r.Register(handler.NewAccessHandler(gateService))
	r.Register(handler.NewAdmissionHandler(lookupService))
	r.Register(handler.NewNotificationHandler(notifications))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
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
