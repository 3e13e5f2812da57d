package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vizlet-labs/vizlet-backend-go/internal/api/handlers"
	"github.com/vizlet-labs/vizlet-backend-go/internal/api/middleware"
	"github.com/vizlet-labs/vizlet-backend-go/internal/config"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/metrics"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/normalize"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/logger"
)

// NewRouter creates and configures the main HTTP router
func NewRouter(cfg *config.Config, log *logger.BatchLogger, norm *normalize.Normalizer, collector metrics.MetricsCollector, health *metrics.HealthChecker) *gin.Engine {
	// Set gin mode based on config
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.ErrorHandlingMiddleware(log.Logger))
	router.Use(middleware.ErrorResponseMiddleware(log.Logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))

	if cfg.Security.EnableCORS {
		router.Use(middleware.CORSMiddleware(cfg.Security.AllowedOrigins))
	}

	if cfg.Security.RateLimiting.Enabled {
		rateLimiter := middleware.NewRateLimiter(
			cfg.Security.RateLimiting.RequestsPerMinute,
			cfg.Security.RateLimiting.BurstSize,
		)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	if cfg.Monitoring.Enabled {
		router.Use(middleware.MetricsMiddleware(collector))
	}

	// Initialize handlers
	h := handlers.NewHandlers(cfg, log, norm, collector, health)

	// Public routes
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	if cfg.Monitoring.Prometheus.Enabled {
		router.GET(cfg.Monitoring.Prometheus.Path, gin.WrapH(promhttp.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", h.Analyze)
		v1.POST("/schema", h.DetectSchema)
	}

	return router
}
