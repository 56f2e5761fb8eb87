package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ratewise/rate_engine_app/cmd/docs"
	"github.com/ratewise/rate_engine_app/internal/core/ports"
	portssvc "github.com/ratewise/rate_engine_app/internal/core/ports/services"
	"github.com/ratewise/rate_engine_app/internal/middleware"
	"github.com/ratewise/rate_engine_app/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	clock ports.Clock,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, clock)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	clock ports.Clock,
) {
	// Apply rate limiting and AuthMiddleware to the entire v1 group; the JWT
	// subject scopes every route to one tenant.
	v1 := r.Group("/api/v1", apiRateLimiter(cfg), middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterRateRoutes(v1, services.Rate, cfg.MaxRateAgeDays, clock)
	RegisterSettingsRoutes(v1, services.Settings)
	RegisterProviderRoutes(v1, services.Provider, services.Quota)
	RegisterHistoryRoutes(v1, services.History)
}

// apiRateLimiter builds the per-IP rate limit middleware from the configured
// spec (e.g. "100-M"). An unparsable spec falls back to the default.
func apiRateLimiter(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
