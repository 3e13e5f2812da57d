package handlers

import (
	"github.com/vizlet-labs/vizlet-backend-go/internal/config"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/metrics"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/normalize"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/report"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/schema"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/logger"
)

// Handlers holds all HTTP handlers and their dependencies.
type Handlers struct {
	config     *config.Config
	log        *logger.BatchLogger
	engine     *report.Engine
	detectOpts schema.Options
	collector  metrics.MetricsCollector
	health     *metrics.HealthChecker
}

// NewHandlers creates the handler set. Engine limits and schema detection
// thresholds come from the analysis section of the config; norm and
// collector may be nil.
func NewHandlers(cfg *config.Config, log *logger.BatchLogger, norm *normalize.Normalizer, collector metrics.MetricsCollector, health *metrics.HealthChecker) *Handlers {
	opts := report.Options{
		MaxCategoryItems:             cfg.Analysis.Report.MaxCategoryItems,
		MaxDailyBreakdownDays:        cfg.Analysis.Report.MaxDailyBreakdownDays,
		MaxMonthlyDistributionMonths: cfg.Analysis.Report.MaxMonthlyDistributionMonths,
		MaxSummaryItems:              cfg.Analysis.Report.MaxSummaryItems,
		ChangeThresholdPercent:       cfg.Analysis.Report.ChangeThresholdPercent,
		MonthlyDistributionColumns:   cfg.Analysis.Report.MonthlyDistributionColumns,
	}
	detectOpts := schema.Options{
		PreferredDateColumns: cfg.Analysis.Schema.PreferredDateColumns,
		PreferredTextColumns: cfg.Analysis.Schema.PreferredTextColumns,
		DateMinRatio:         cfg.Analysis.Schema.DateMinRatio,
		TextMinAvgLength:     cfg.Analysis.Schema.TextMinAvgLength,
	}

	return &Handlers{
		config:     cfg,
		log:        log,
		engine:     report.NewEngine(opts, norm, log.Logger),
		detectOpts: detectOpts,
		collector:  collector,
		health:     health,
	}
}
