package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"mediconnect/config"
	deliveryHttp "mediconnect/internal/delivery/http"
	"mediconnect/internal/delivery/http/handler"
	"mediconnect/internal/delivery/http/middleware"
	"mediconnect/internal/domain/repository"
	"mediconnect/internal/infrastructure/advice"
	"mediconnect/internal/infrastructure/cache"
	"mediconnect/internal/infrastructure/database"
	"mediconnect/internal/infrastructure/storage"
	repositoryImpl "mediconnect/internal/repository"
	"mediconnect/internal/seed"
	"mediconnect/internal/service"
	"mediconnect/internal/usecase"
	"mediconnect/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

const auditLogCapacity = 1000

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Store       repository.BlobStore
	Session     usecase.SessionUsecase
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App)
	app.Log.Info("Configuration loaded successfully")

	// Initialize storage backend
	if err := app.initializeStorage(context.Background()); err != nil {
		app.Close()
		return nil, err
	}

	// Initialize all layers
	app.Server = app.initializeServer()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// initializeStorage opens the BlobStore selected by STORAGE_DRIVER
func (app *App) initializeStorage(ctx context.Context) error {
	cfg := app.Config

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		app.Store = storage.NewMemoryBlobStore()

	case config.StorageDriverFile:
		dir, err := filepath.Abs(cfg.Storage.Dir)
		if err != nil {
			return fmt.Errorf("failed to resolve storage dir: %w", err)
		}
		store, err := storage.NewFileBlobStore(afero.NewOsFs(), dir)
		if err != nil {
			return fmt.Errorf("failed to open file store: %w", err)
		}
		app.Store = store

	case config.StorageDriverRedis:
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, app.Log)
		if err != nil {
			return err
		}
		app.RedisClient = redisClient
		app.Store = storage.NewRedisBlobStore(redisClient, cfg.Storage.KeyPrefix)

	case config.StorageDriverPostgres:
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env, app.Log)
		if err != nil {
			return err
		}
		app.DB = db
		store, err := storage.NewPostgresBlobStore(db)
		if err != nil {
			return fmt.Errorf("failed to prepare postgres store: %w", err)
		}
		app.Store = store

	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	app.Log.WithField("driver", cfg.Storage.Driver).Info("Storage initialized")
	return nil
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() *http.Server {
	cfg := app.Config
	log := app.Log
	delay := cfg.App.SimulatedLatency
	now := time.Now

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repositoryImpl.NewUserRepository(seed.Users())
	appointmentRepo := repositoryImpl.NewAppointmentRepository(app.Store, log, now)
	sessionRepo := repositoryImpl.NewSessionRepository(app.Store, log)
	settingsRepo := repositoryImpl.NewSettingsRepository(app.Store, log)
	auditLogRepo := repositoryImpl.NewAuditLogRepository(auditLogCapacity)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo, now)

	// Initialize advice gateway; without a key the assistant only apologizes
	var gateway repository.AdviceGateway
	geminiClient, err := advice.NewGeminiClient(&cfg.Advice, log)
	if err != nil {
		log.Warnf("Health assistant disabled: %v", err)
	} else {
		gateway = geminiClient
	}

	// Initialize usecases
	sessionUsecase := usecase.NewSessionUsecase(log, sessionRepo, auditService, delay)
	directoryUsecase := usecase.NewDirectoryUsecase(log, userRepo, settingsRepo, auditService, delay)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, userRepo, auditService, delay, now)
	adviceUsecase := usecase.NewAdviceUsecase(log, gateway, cfg.Advice.Timeout)
	adminUsecase := usecase.NewAdminUsecase(log, userRepo, appointmentRepo, settingsRepo, auditService, delay, now)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Restore the persisted session
	if user := sessionUsecase.Restore(context.Background()); user != nil {
		log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("Session restored")
	}
	app.Session = sessionUsecase

	// Initialize handlers
	authHandler := handler.NewAuthHandler(directoryUsecase, sessionUsecase, customValidator)
	userHandler := handler.NewUserHandler(directoryUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	adviceHandler := handler.NewAdviceHandler(adviceUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	navigationHandler := handler.NewNavigationHandler()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessionUsecase)
	maintenanceMiddleware := middleware.NewMaintenanceMiddleware(settingsRepo, log)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		appointmentHandler,
		adviceHandler,
		adminHandler,
		auditLogHandler,
		navigationHandler,
		authMiddleware,
		maintenanceMiddleware,
		loggingMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
