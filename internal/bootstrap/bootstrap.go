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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/univera/univera/internal/app/controllers"
	appMigrations "github.com/univera/univera/internal/app/migrations"
	appRepos "github.com/univera/univera/internal/app/repositories"
	appRoutes "github.com/univera/univera/internal/app/routes"
	appServices "github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/config"
	"github.com/univera/univera/internal/db"
	appMiddleware "github.com/univera/univera/internal/middleware"
	pkgAuth "github.com/univera/univera/internal/pkg/auth"
	"github.com/univera/univera/internal/pkg/cache"
	"github.com/univera/univera/internal/pkg/helpers"
	"github.com/univera/univera/internal/pkg/logger"
	"github.com/univera/univera/internal/scheduler"
	"github.com/univera/univera/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos      *appRepos.Repositories
	JWTService *pkgAuth.JWTService
	Cache      *cache.Cache
	Logger     zerolog.Logger

	AuthService        *appServices.AuthService
	AcademicService    *appServices.AcademicService
	StudentService     *appServices.StudentService
	FacultyService     *appServices.FacultyService
	TimetableService   *appServices.TimetableService
	ExaminationService *appServices.ExaminationService
	HallTicketService  *appServices.HallTicketService
	FeeService         *appServices.FeeService
	LibraryService     *appServices.LibraryService
	HostelService      *appServices.HostelService
	TransportService   *appServices.TransportService
	WizardService      *appServices.WizardService
	DashboardService   *appServices.DashboardService

	AuthController        *appControllers.AuthController
	AcademicController    *appControllers.AcademicController
	StudentController     *appControllers.StudentController
	FacultyController     *appControllers.FacultyController
	TimetableController   *appControllers.TimetableController
	ExaminationController *appControllers.ExaminationController
	HallTicketController  *appControllers.HallTicketController
	FeeController         *appControllers.FeeController
	LibraryController     *appControllers.LibraryController
	HostelController      *appControllers.HostelController
	TransportController   *appControllers.TransportController
	WizardController      *appControllers.WizardController
	DashboardController   *appControllers.DashboardController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Scheduler      *scheduler.Scheduler
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
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

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// SetupCache connects to Redis.
func SetupCache(cfg *config.Config, lgr zerolog.Logger) (*cache.Cache, error) {
	lgr.Info().Msg("Connecting to Redis...")
	c, err := cache.New(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to Redis")
		return nil, err
	}
	lgr.Info().Msg("Redis connection successfully established.")
	return c, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, c *cache.Cache, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Cache: c}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.AcademicService = appServices.NewAcademicService(
		deps.Repos.AcademicYearRepository,
		deps.Repos.CatalogRepository,
		deps.Repos.CourseRepository,
		deps.Repos.FacultyRepository,
	)
	deps.StudentService = appServices.NewStudentService(
		database,
		deps.Repos.StudentRepository,
		deps.Repos.UserRepository,
		deps.Repos.CatalogRepository,
		deps.Repos.SequenceRepository,
		deps.Repos.ExaminationRepository,
		deps.Repos.AcademicYearRepository,
	)
	deps.FacultyService = appServices.NewFacultyService(
		database,
		deps.Repos.FacultyRepository,
		deps.Repos.UserRepository,
		deps.Repos.CatalogRepository,
		deps.Repos.SequenceRepository,
		deps.Repos.CourseRepository,
		deps.Repos.TimetableRepository,
	)
	deps.TimetableService = appServices.NewTimetableService(
		deps.Repos.TimetableRepository,
		deps.Repos.CourseRepository,
		deps.Repos.FacultyRepository,
		deps.Repos.CatalogRepository,
	)
	deps.ExaminationService = appServices.NewExaminationService(
		deps.Repos.ExaminationRepository,
		deps.Repos.CourseRepository,
		deps.Repos.StudentRepository,
		deps.Repos.AcademicYearRepository,
	)
	deps.HallTicketService = appServices.NewHallTicketService(
		deps.Repos.HallTicketRepository,
		deps.Repos.ExaminationRepository,
		deps.Repos.StudentRepository,
		deps.Repos.FeeRepository,
		deps.Repos.CatalogRepository,
		deps.Repos.SequenceRepository,
	)
	deps.FeeService = appServices.NewFeeService(
		deps.Repos.FeeRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CatalogRepository,
		deps.Repos.SequenceRepository,
	)
	deps.LibraryService = appServices.NewLibraryService(deps.Repos.LibraryRepository, deps.Repos.StudentRepository)
	deps.HostelService = appServices.NewHostelService(deps.Repos.HostelRepository, deps.Repos.StudentRepository)
	deps.TransportService = appServices.NewTransportService(deps.Repos.TransportRepository, deps.Repos.StudentRepository)
	deps.WizardService = appServices.NewWizardService(
		c,
		deps.StudentService,
		deps.HallTicketService,
		deps.Repos.StudentRepository,
		deps.Repos.ExaminationRepository,
		deps.Repos.FeeRepository,
		deps.Repos.CatalogRepository,
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.DashboardRepository,
		deps.Repos.ExaminationRepository,
		deps.Repos.HostelRepository,
		c,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AcademicController = appControllers.NewAcademicController(deps.AcademicService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.FacultyController = appControllers.NewFacultyController(deps.FacultyService)
	deps.TimetableController = appControllers.NewTimetableController(deps.TimetableService)
	deps.ExaminationController = appControllers.NewExaminationController(deps.ExaminationService)
	deps.HallTicketController = appControllers.NewHallTicketController(deps.HallTicketService)
	deps.FeeController = appControllers.NewFeeController(deps.FeeService)
	deps.LibraryController = appControllers.NewLibraryController(deps.LibraryService)
	deps.HostelController = appControllers.NewHostelController(deps.HostelService)
	deps.TransportController = appControllers.NewTransportController(deps.TransportService)
	deps.WizardController = appControllers.NewWizardController(deps.WizardService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

	return deps, nil
}

// SetupScheduler registers the periodic jobs. Returns nil when the
// scheduler is disabled in configuration.
func SetupScheduler(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *scheduler.Scheduler {
	if !cfg.Scheduler.Enabled {
		lgr.Info().Msg("Scheduler disabled by configuration")
		return nil
	}

	sched := scheduler.New()
	sched.Register(
		scheduler.NewOverdueSweepJob(deps.LibraryService),
		helpers.ParseDuration(cfg.Scheduler.OverdueSweepInterval, time.Hour),
	)
	sched.Register(
		scheduler.NewReservationSweepJob(deps.LibraryService),
		helpers.ParseDuration(cfg.Scheduler.ReservationSweepInterval, 30*time.Minute),
	)
	sched.Register(
		scheduler.NewFeeReminderJob(deps.WizardService),
		helpers.ParseDuration(cfg.Scheduler.FeeReminderInterval, 24*time.Hour),
	)

	deps.Scheduler = sched
	return sched
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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AcademicController,
		deps.StudentController,
		deps.FacultyController,
		deps.TimetableController,
		deps.ExaminationController,
		deps.HallTicketController,
		deps.FeeController,
		deps.LibraryController,
		deps.HostelController,
		deps.TransportController,
		deps.WizardController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
