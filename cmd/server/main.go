package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vizlet-labs/vizlet-backend-go/internal/api"
	"github.com/vizlet-labs/vizlet-backend-go/internal/config"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/metrics"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/normalize"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/logger"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/version"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	log.ApplyConfig(cfg.Logging.Level, cfg.Logging.Format)

	// Load category normalization rules
	norm, err := loadNormalizer(cfg, log)
	if err != nil {
		log.Fatal("Failed to load normalizer rules:", err)
	}

	// Initialize metrics collector
	collector := metrics.NewPrometheusCollector(&metrics.MetricsConfig{
		Enabled: cfg.Monitoring.Enabled,
		Prefix:  "vizlet",
	})

	// Register health checks
	health := metrics.NewHealthChecker()
	health.RegisterCheck("normalizer_rules", normalizerRulesCheck(cfg))

	// Initialize router
	router := api.NewRouter(cfg, log, norm, collector, health)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"version": version.GetVersion(),
		}).Info("Starting Vizlet analytics backend")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.FlushPending()
	log.Info("Server exited")
}

// loadNormalizer builds the category normalizer from the configured rule
// file. A missing file downgrades to plain canonicalization; a present
// but unparseable file is fatal.
func loadNormalizer(cfg *config.Config, log *logger.BatchLogger) (*normalize.Normalizer, error) {
	path := cfg.Analysis.NormalizerRulesPath
	if path == "" {
		return normalize.New(nil), nil
	}

	rules, err := normalize.LoadRules(path)
	if os.IsNotExist(err) {
		log.WithField("path", path).Warn("Normalizer rules file not found, using canonicalization only")
		return normalize.New(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return normalize.New(rules), nil
}

func normalizerRulesCheck(cfg *config.Config) func() metrics.HealthStatus {
	return func() metrics.HealthStatus {
		status := metrics.HealthStatus{Status: "healthy", Timestamp: time.Now()}
		path := cfg.Analysis.NormalizerRulesPath
		if path == "" {
			status.Message = "no rules configured, canonicalization only"
			return status
		}
		if _, err := os.Stat(path); err != nil {
			status.Status = "degraded"
			status.Message = fmt.Sprintf("rules file %s unavailable: %v", path, err)
			return status
		}
		status.Message = fmt.Sprintf("rules loaded from %s", path)
		return status
	}
}
