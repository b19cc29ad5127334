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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nivedpm/hostelhub/internal/app/controllers"
	"github.com/nivedpm/hostelhub/internal/app/migrations"
	"github.com/nivedpm/hostelhub/internal/app/repositories"
	"github.com/nivedpm/hostelhub/internal/app/routes"
	"github.com/nivedpm/hostelhub/internal/app/services"
	"github.com/nivedpm/hostelhub/internal/config"
	"github.com/nivedpm/hostelhub/internal/db"
	"github.com/nivedpm/hostelhub/internal/middleware"
	"github.com/nivedpm/hostelhub/internal/pkg/auth"
	"github.com/nivedpm/hostelhub/internal/pkg/cache"
	"github.com/nivedpm/hostelhub/internal/pkg/filestorage"
	"github.com/nivedpm/hostelhub/internal/pkg/helpers"
	"github.com/nivedpm/hostelhub/internal/pkg/logger"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Repos             *repositories.Repositories
	JWTService        *auth.JWTService
	FileStorage       *filestorage.LocalStorage
	ReportCache       *cache.ReportCache
	UserService       *services.UserService
	AttendanceService *services.AttendanceService
	MesscutService    *services.MesscutService
	Controllers       routes.Controllers
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrations.NewMigrator(dbPool).ApplyDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = repositories.NewRepositories(dbPool)

	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = fileStorage

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	if cfg.Redis.Enabled {
		client := cache.NewRedisClient(cfg.Redis.Addr)
		deps.ReportCache = cache.NewReportCache(client,
			helpers.ParseDuration(cfg.Redis.ReportTTL, 5*time.Minute))
		if !deps.ReportCache.Healthy(context.Background()) {
			lgr.Warn().Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, report caching degraded")
		}
	}

	deps.UserService = services.NewUserService(deps.Repos.UserRepository, deps.JWTService, fileStorage)
	deps.AttendanceService = services.NewAttendanceService(deps.Repos.AttendanceRepository, deps.Repos.UserRepository)
	deps.MesscutService = services.NewMesscutService(deps.Repos.MesscutRepository, deps.Repos.UserRepository, deps.ReportCache)

	deps.Controllers = routes.Controllers{
		User:       controllers.NewUserController(deps.UserService),
		Attendance: controllers.NewAttendanceController(deps.AttendanceService),
		Messcut:    controllers.NewMesscutController(deps.MesscutService),
	}

	return deps, nil
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, dbPool *pgxpool.Pool) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	if cfg.RateLimit.PerMinute > 0 {
		limiter := middleware.NewTokenBucket(cfg.RateLimit.PerMinute, cfg.RateLimit.PerMinute)
		router.Use(limiter.GinMiddleware())
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Register(router, deps.Controllers, deps.JWTService)
	return router
}
