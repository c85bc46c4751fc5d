package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LexovateAyacucho/qhoar-web/internal/config"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/jobs"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/migrations"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/repositories"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/handlers"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/middleware"
	"github.com/LexovateAyacucho/qhoar-web/internal/usecases"
	"github.com/LexovateAyacucho/qhoar-web/pkg/jwt"
	"github.com/LexovateAyacucho/qhoar-web/pkg/logger"
	"github.com/LexovateAyacucho/qhoar-web/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	applyMigrations = migrations.Apply
	runServer       = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownSignals = func() <-chan os.Signal {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		return quit
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() { _ = redis.Close() }()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
		if cfg.Database.AutoMigrate {
			if err := applyMigrations(ctx, sqlDB); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			logger.Info(ctx, "Schema migrations applied")
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	store, err := newObjectStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	mailer, err := newMailer(ctx, cfg.Mail)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	notifier, err := newNotifier(ctx, cfg.Notify, cfg.Mail.Timeout)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	// Repositories
	uow := repositories.NewUnitOfWork(db)
	userRepo := repositories.NewUserRepository(db)
	verifRepo := repositories.NewEmailVerificationRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	businessRepo := repositories.NewBusinessRepository(db)
	imageRepo := repositories.NewBusinessImageRepository(db)
	eventRepo := repositories.NewEventRepository(db)

	// Usecases
	galleryLocker := redis.NewLocker("lock:gallery:", cfg.App.GalleryLockTTL, cfg.App.GalleryLockWait)
	authUsecase := usecases.NewAuthUsecase(uow, userRepo, verifRepo, profileRepo, businessRepo, jwtService, sessionStore, mailer, usecases.AuthConfig{
		PublicBaseURL: cfg.App.PublicBaseURL,
		DeepLink:      cfg.App.DeepLink,
	})
	adminUsecase := usecases.NewAdminUsecase(businessRepo, eventRepo, notifier)
	designUsecase := usecases.NewDesignUsecase(businessRepo, imageRepo)
	galleryUsecase := usecases.NewGalleryUsecase(businessRepo, imageRepo, store, galleryLocker, cfg.Storage.MaxUploadBytes)
	uploadUsecase := usecases.NewUploadUsecase(businessRepo, store, cfg.Storage.MaxUploadBytes)
	previewUsecase := usecases.NewPreviewUsecase(businessRepo, imageRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase, handlers.CookieConfig{
		Secure:     cfg.Server.Env == "production",
		RefreshTTL: cfg.JWT.RefreshExpiry,
	})
	adminHandler := handlers.NewAdminHandler(adminUsecase, uploadUsecase)
	portalHandler := handlers.NewPortalHandler(designUsecase, galleryUsecase, uploadUsecase, previewUsecase)
	publicHandler := handlers.NewPublicHandler(previewUsecase)

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)
	loginLimiter.StartCleanup(ctx, 10*time.Minute)

	purgeJob := jobs.NewTokenPurgeJob(verifRepo, cfg.Jobs.TokenPurgeSchedule)
	go func() {
		if err := purgeJob.Start(ctx); err != nil {
			logger.Error(ctx, "Token purge job stopped", zap.Error(err))
		}
	}()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	if cfg.Storage.Driver == storageDriverLocal {
		r.Static("/storage", cfg.Storage.LocalDir)
	}
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		adminHandler:   adminHandler,
		portalHandler:  portalHandler,
		publicHandler:  publicHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService, sessionStore),
		loginLimiter:   loginLimiter.Handler(),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := shutdownSignals()
	go func() {
		select {
		case <-quit:
		case <-ctx.Done():
			return
		}
		logger.Info(ctx, "Shutting down server")
		purgeJob.Stop()
		cancel()

		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Qhoar backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
