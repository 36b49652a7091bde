package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Randle9000/phresh-api/internal/infra/config"
	"github.com/Randle9000/phresh-api/internal/transport/http/handlers"
	"github.com/Randle9000/phresh-api/internal/transport/http/middleware"
	"github.com/Randle9000/phresh-api/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth      *usecase.AuthService
	Users     *usecase.UserService
	Profiles  *usecase.ProfileService
	Cleanings *usecase.CleaningService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Metrics  *middleware.HTTPMetrics
	Services ServiceSet
	Database DatabaseChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	requireUser := middleware.RequireUser(deps.Services.Auth)

	healthOptions := make([]handlers.HealthOption, 0, 1)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		userHandler := handlers.NewUserHandler(deps.Services.Users)
		userHandler.RegisterRoutes(api.Group("/users"), requireUser)

		profileHandler := handlers.NewProfileHandler(deps.Services.Profiles)
		profileHandler.RegisterRoutes(api.Group("/profiles"), requireUser)

		cleaningGroup := api.Group("/cleanings")
		cleaningGroup.Use(requireUser)
		cleaningHandler := handlers.NewCleaningHandler(deps.Services.Cleanings)
		cleaningHandler.RegisterRoutes(cleaningGroup)
	}

	return r
}
