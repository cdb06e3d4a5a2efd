package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/config"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/transport/http/handlers"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/transport/http/middleware"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Registration *usecase.RegistrationService
	Sessions     *usecase.SessionService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	Services    ServiceSet
	Store       StoreChecker
	HTTPMetrics *middleware.HTTPMetrics
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
}

// StoreChecker exposes readiness behaviour for the account store.
type StoreChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(deps.Config.App.CORSAllowedOrigins))
	if deps.Config.Telemetry.TracingEnabled {
		r.Use(middleware.Tracing(middleware.TracingOptions{ServiceName: deps.Config.Telemetry.ServiceName}))
	}
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(deps.HTTPMetrics.Handler())

	healthOptions := make([]handlers.HealthOption, 0, 1)
	if deps.Store != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck(deps.Config.Store.Backend, deps.Store.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/welcome", handlers.Welcome)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	} else {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if deps.Services.Registration != nil && deps.Services.Sessions != nil {
		authHandler := handlers.NewAuthHandler(
			deps.Services.Registration,
			deps.Services.Sessions,
			handlers.WithLogger(deps.Logger),
		)
		authHandler.RegisterRoutes(r.Group("/api"))
	}

	return r
}
