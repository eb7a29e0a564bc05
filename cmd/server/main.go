package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"legal-city.backend/internal/config"
	"legal-city.backend/internal/infrastructure/mailer"
	"legal-city.backend/internal/infrastructure/migrations"
	infraoauth "legal-city.backend/internal/infrastructure/oauth"
	"legal-city.backend/internal/infrastructure/repositories"
	"legal-city.backend/internal/interfaces/http/handlers"
	"legal-city.backend/internal/interfaces/http/middleware"
	"legal-city.backend/internal/usecases"
	"legal-city.backend/pkg/jwt"
	"legal-city.backend/pkg/logger"
	"legal-city.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
		})
	}
	openMigrationDB = func(dsn string) (*sql.DB, error) { return sql.Open("postgres", dsn) }
	runMigrations   = migrations.Up
	runServer       = func(srv *http.Server) error { return srv.ListenAndServe() }
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
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Apply schema migrations over database/sql before GORM connects.
	dsn := cfg.Database.URL()
	migrationDB, err := openMigrationDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	if err := runMigrations(context.Background(), migrationDB); err != nil {
		migrationDB.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	migrationDB.Close()
	logger.Info(context.Background(), "Migrations applied")

	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	// Rate-limit counters live in memory unless Redis is enabled for shared
	// deployments.
	var counterStore middleware.CounterStore = middleware.NewMemoryCounterStore()
	if cfg.Redis.Enabled {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		counterStore = middleware.NewRedisCounterStore("ratelimit:")
		logger.Info(context.Background(), "Redis rate-limit store initialized")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	accountRepo := repositories.NewAccountRepository(db)
	uow := repositories.NewUnitOfWork(db)

	mailDispatcher := mailer.NewLogDispatcher(cfg.Frontend.URL, logger.GetLogger())

	providers := []infraoauth.Provider{
		infraoauth.GoogleProvider(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret),
		infraoauth.FacebookProvider(cfg.OAuth.FacebookClientID, cfg.OAuth.FacebookClientSecret),
	}
	providerClient := infraoauth.NewHTTPClient(nil)
	stateStore := infraoauth.NewMemoryStateStore()

	authUsecase := usecases.NewAuthUsecase(accountRepo, uow, mailDispatcher, jwtService)
	profileUsecase := usecases.NewProfileUsecase(accountRepo)
	adminUsecase := usecases.NewAdminUsecase(accountRepo)
	oauthUsecase := usecases.NewOAuthUsecase(accountRepo, uow, providers, providerClient, stateStore, jwtService, cfg.OAuth.CallbackBaseURL)

	authHandler := handlers.NewAuthHandler(authUsecase)
	profileHandler := handlers.NewProfileHandler(profileUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)
	oauthHandler := handlers.NewOAuthHandler(oauthUsecase, cfg.Frontend.URL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Frontend.URL)
	registerServiceRoutes(r)
	registerAPIRoutes(r, routeDeps{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		adminHandler:   adminHandler,
		oauthHandler:   oauthHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService),
		authLimiter:    middleware.RateLimit(counterStore, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window),
		oauthLimiter:   middleware.NewClientLimiter(cfg.RateLimit.OAuthPerMinute).Handler(),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		srv.Shutdown(context.Background())
	}()

	logger.Info(context.Background(), "Legal City backend starting",
		zap.String("port", cfg.Server.Port),
	)

	if err := runServer(srv); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
