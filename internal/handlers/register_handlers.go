package handlers

import (
	"net/http"

	"github.com/SscSPs/banking_portal/cmd/docs"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/middleware"
	"github.com/SscSPs/banking_portal/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// apiLimiter may be nil to disable per-caller request limits.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiLimiter *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	public := r.Group("/api/v1")
	if apiLimiter != nil {
		public.Use(middleware.RateLimit(apiLimiter))
	}
	public.GET("/", getHome)
	registerPublicUserRoutes(public, services.User)

	setupAPIV1Routes(r, cfg, services, apiLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	apiLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if apiLimiter != nil {
		v1.Use(middleware.RateLimit(apiLimiter))
	}

	registerUserRoutes(v1, service.User)
	registerLinkingRoutes(v1, service.Linking, service.Accounts)
	registerStatementRoutes(v1, service.Statement)
	registerNotificationRoutes(v1, service.Notification)
	registerAuditRoutes(v1, service.Audit, service.User)
	registerAdminRoutes(v1, service.User, service.Accounts, service.Statement)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
