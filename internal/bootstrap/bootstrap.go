package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/attendlink/attendlink/internal/app/controllers"
	appMigrations "github.com/attendlink/attendlink/internal/app/migrations"
	"github.com/attendlink/attendlink/internal/app/repositories"
	"github.com/attendlink/attendlink/internal/app/routes"
	"github.com/attendlink/attendlink/internal/app/services"
	"github.com/attendlink/attendlink/internal/config"
	"github.com/attendlink/attendlink/internal/db"
	"github.com/attendlink/attendlink/internal/middleware"
	"github.com/attendlink/attendlink/internal/pkg/auth"
	"github.com/attendlink/attendlink/internal/pkg/logger"
	"github.com/attendlink/attendlink/internal/seed"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Repos          *repositories.Repositories
	Services       *services.Services
	Controllers    *controllers.Controllers
	JWTService     *auth.JWTService
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	Redis          *redis.Client
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	repos := repositories.NewRepositories(database.Pool)
	if err := seed.CreateDefaultData(context.Background(), database, repos); err != nil {
		// Seeding problems should not block startup
		logger.Error().Err(err).Msg("Failed to seed default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) *Dependencies {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(database.Pool)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: config.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = services.NewServices(deps.Repos, database, deps.JWTService, cfg)
	deps.Controllers = controllers.NewControllers(deps.Services)
	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	if cfg.Redis.Addr != "" {
		deps.Redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	} else {
		logger.Warn().Msg("Redis address not configured, login rate limiting disabled")
	}
	deps.RateLimiter = middleware.NewRateLimiter(
		deps.Redis,
		cfg.Redis.LoginRateLimit,
		config.ParseDuration(cfg.Redis.RateLimitWindow, time.Minute),
	)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()
	router.Use(middleware.RequestMetrics())

	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.RateLimiter)

	return router
}
