package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/pandu-magang/pandu-backend/internal/app/controllers"
	appMigrations "github.com/pandu-magang/pandu-backend/internal/app/migrations"
	appRepos "github.com/pandu-magang/pandu-backend/internal/app/repositories"
	appRoutes "github.com/pandu-magang/pandu-backend/internal/app/routes"
	appServices "github.com/pandu-magang/pandu-backend/internal/app/services"
	"github.com/pandu-magang/pandu-backend/internal/config"
	"github.com/pandu-magang/pandu-backend/internal/db"
	appMiddleware "github.com/pandu-magang/pandu-backend/internal/middleware"
	pkgAuth "github.com/pandu-magang/pandu-backend/internal/pkg/auth"
	"github.com/pandu-magang/pandu-backend/internal/pkg/helpers"
	"github.com/pandu-magang/pandu-backend/internal/pkg/logger"
	pkgWebsocket "github.com/pandu-magang/pandu-backend/internal/pkg/websocket"
	"github.com/pandu-magang/pandu-backend/internal/scheduler"
	"github.com/pandu-magang/pandu-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	InternService          *appServices.InternService
	DepartmentService      *appServices.DepartmentService
	InstitutionService     *appServices.InstitutionService
	EvaluationService      *appServices.EvaluationService
	NotificationService    *appServices.NotificationService
	AuthController         *appControllers.AuthController
	InternController       *appControllers.InternController
	DepartmentController   *appControllers.DepartmentController
	InstitutionController  *appControllers.InstitutionController
	EvaluationController   *appControllers.EvaluationController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Hub                    *pkgWebsocket.Hub
	WSHandler              *pkgWebsocket.Handler
	Scheduler              *scheduler.Scheduler
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	dbPool, err := db.NewPool(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create Default Data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupRedis connects the institution cache. A nil client means caching is
// off, the application still works.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	client, err := db.NewRedisClient(cfg)
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		return nil
	}
	return client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, cache *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Realtime notification hub
	deps.Hub = pkgWebsocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = pkgWebsocket.NewHandler(deps.Hub, lgr)

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.InternService = appServices.NewInternService(
		deps.Repos.InternRepository,
		deps.Repos.DepartmentRepository,
		cfg.Internship.SlotLimit,
		lgr,
	)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository, lgr)
	deps.InstitutionService = appServices.NewInstitutionService(deps.Repos.InstitutionRepository, cache, lgr)
	deps.EvaluationService = appServices.NewEvaluationService(
		deps.Repos.EvaluationRepository,
		deps.Repos.CertificateRepository,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.NotificationRepository,
		deps.Repos.UserRepository,
		deps.Repos.InternRepository,
		deps.Hub,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.InternController = appControllers.NewInternController(deps.InternService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.InstitutionController = appControllers.NewInstitutionController(deps.InstitutionService)
	deps.EvaluationController = appControllers.NewEvaluationController(deps.EvaluationService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)

	// Background jobs
	deps.Scheduler = scheduler.New(
		deps.InternService,
		deps.NotificationService,
		deps.Repos.TokenRepository,
		lgr,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.InternController,
		deps.DepartmentController,
		deps.InstitutionController,
		deps.EvaluationController,
		deps.NotificationController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
