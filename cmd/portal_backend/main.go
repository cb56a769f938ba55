package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/banking_portal/internal/adapters/notify"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	"github.com/SscSPs/banking_portal/internal/core/services"
	"github.com/SscSPs/banking_portal/internal/handlers"
	"github.com/SscSPs/banking_portal/internal/middleware"
	"github.com/SscSPs/banking_portal/internal/platform/config"
	"github.com/SscSPs/banking_portal/internal/platform/ratelimit"
	"github.com/SscSPs/banking_portal/internal/repositories/database/pgsql"
	"github.com/SscSPs/banking_portal/internal/repositories/memory"
	"github.com/SscSPs/banking_portal/internal/safego"
	"github.com/SscSPs/banking_portal/internal/telemetry"
	"github.com/SscSPs/banking_portal/internal/utils/validation"
	"github.com/SscSPs/banking_portal/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// @title Banking Portal API
// @version 1.0
// @description Account linking, statements, notifications and the audit trail of the banking portal.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := telemetry.SetupLogger(cfg.LogFormat, cfg.LogLevel)

	if err := validation.RegisterWithGin(); err != nil {
		logger.Error("Failed to register validation rules", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	repos, cleanup, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	var redisClient *redis.Client
	if cfg.RateLimitRedisURL != "" {
		redisClient, err = ratelimit.NewRedisClient(ctx, cfg.RateLimitRedisURL)
		if err != nil {
			logger.Error("Failed to connect to rate limit redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = redisClient.Close() }()
		logger.Info("Rate limit counters shared through redis")
	}

	verifyLimiter, err := ratelimit.NewLimiter(cfg.VerifyRateLimit, redisClient, "verify")
	if err != nil {
		logger.Error("Failed to create verification limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	apiLimiter, err := ratelimit.NewLimiter(cfg.APIRateLimit, redisClient, "api")
	if err != nil {
		logger.Error("Failed to create API limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, notify.NewLogTransport(logger), verifyLimiter)

	if cfg.BootstrapAdminUsername != "" {
		admin, err := serviceContainer.User.EnsureAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
		if err != nil {
			logger.Error("Failed to bootstrap client admin", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Client admin ready", slog.String("user_id", admin.UserID))
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterRoutes(r, cfg, serviceContainer, apiLimiter)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	safego.Go(func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down server", slog.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}

	// Notifications already stored still get their external delivery attempt.
	serviceContainer.Notification.WaitForDeliveries()
	stop()
	logger.Info("Server stopped")
}

// setupStorage selects the repository implementations for cfg.StorageDriver and returns
// a cleanup func releasing any connections it opened.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		applied, err := pgsql.RunMigrations(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return nil, nil, err
	}
	telemetry.StartDBStatsCollector(ctx, dbPool, 15*time.Second)

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
