package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/infra/config"
	"github.com/arklim/hall-of-fame-creators/internal/transport/http/handlers"
	"github.com/arklim/hall-of-fame-creators/internal/transport/http/middleware"
	"github.com/arklim/hall-of-fame-creators/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Identity *usecase.IdentityService
	Simple   *usecase.SimpleAuthService
	Admin    *usecase.CreatorAdminService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Metrics  *middleware.HTTPMetrics
	Services ServiceSet
	Database DatabaseChecker
	Cache    CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	healthOptions := make([]handlers.HealthOption, 0, 2)

	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}

	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		creatorsGroup := api.Group("/creators")

		authHandler := handlers.NewAuthHandler(deps.Services.Identity, deps.Services.Simple)
		authHandler.RegisterRoutes(creatorsGroup)

		// Admin routes stay unregistered without a signing secret so the
		// maintenance surface cannot be exposed unauthenticated.
		if deps.Services.Admin != nil && deps.Config.Admin.JWTSecret != "" {
			adminGroup := api.Group("/admin")
			adminGroup.Use(middleware.RequireAdmin(deps.Config.Admin.JWTSecret))

			adminHandler := handlers.NewAdminCreatorsHandler(deps.Services.Admin)
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	return r
}
