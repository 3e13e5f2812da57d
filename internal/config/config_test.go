package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8000, Host: "0.0.0.0", Mode: "development"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			EnableCORS:     true,
			AllowedOrigins: []string{"*"},
			RateLimiting:   SecurityRateLimitConfig{Enabled: true, RequestsPerMinute: 60, BurstSize: 10},
		},
		Monitoring: MonitoringConfig{
			Enabled:    true,
			Prometheus: MonitoringPrometheusConfig{Enabled: true, Path: "/metrics"},
		},
		Analysis: AnalysisConfig{
			NormalizerRulesPath: "./configs/normalizer.yaml",
			Schema: SchemaConfig{
				PreferredDateColumns: []string{"date"},
				PreferredTextColumns: []string{"content"},
				DateMinRatio:         0.5,
				TextMinAvgLength:     20,
			},
			Report: ReportLimitsConfig{
				MaxCategoryItems:             5,
				MaxDailyBreakdownDays:        10,
				MaxMonthlyDistributionMonths: 12,
				MaxSummaryItems:              4,
				ChangeThresholdPercent:       0.1,
			},
		},
	}
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Security.EnableCORS)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 60, cfg.Security.RateLimiting.RequestsPerMinute)
	assert.Equal(t, "/metrics", cfg.Monitoring.Prometheus.Path)
	assert.Equal(t, "./configs/normalizer.yaml", cfg.Analysis.NormalizerRulesPath)
	assert.Equal(t, 0, cfg.Analysis.MaxRows)
	assert.Equal(t, 0.5, cfg.Analysis.Schema.DateMinRatio)
	assert.Equal(t, 5, cfg.Analysis.Report.MaxCategoryItems)
	assert.Equal(t, 10, cfg.Analysis.Report.MaxDailyBreakdownDays)
	assert.Equal(t, 0.1, cfg.Analysis.Report.ChangeThresholdPercent)
	assert.Contains(t, cfg.Analysis.Schema.PreferredDateColumns, "날짜")
	assert.Contains(t, cfg.Analysis.Report.MonthlyDistributionColumns, "여행일")
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantMsg: "server.port",
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.Server.Host = "" },
			wantMsg: "server.host",
		},
		{
			name:    "rate limit rpm required when enabled",
			mutate:  func(c *Config) { c.Security.RateLimiting.RequestsPerMinute = 0 },
			wantMsg: "requests_per_minute",
		},
		{
			name:    "rate limit burst required when enabled",
			mutate:  func(c *Config) { c.Security.RateLimiting.BurstSize = 0 },
			wantMsg: "burst_size",
		},
		{
			name:    "prometheus path must be rooted",
			mutate:  func(c *Config) { c.Monitoring.Prometheus.Path = "metrics" },
			wantMsg: "monitoring.prometheus.path",
		},
		{
			name:    "negative max rows",
			mutate:  func(c *Config) { c.Analysis.MaxRows = -1 },
			wantMsg: "analysis.max_rows",
		},
		{
			name:    "date ratio above 1",
			mutate:  func(c *Config) { c.Analysis.Schema.DateMinRatio = 1.5 },
			wantMsg: "date_min_ratio",
		},
		{
			name:    "zero category items",
			mutate:  func(c *Config) { c.Analysis.Report.MaxCategoryItems = 0 },
			wantMsg: "max_category_items",
		},
		{
			name:    "negative change threshold",
			mutate:  func(c *Config) { c.Analysis.Report.ChangeThresholdPercent = -0.1 },
			wantMsg: "change_threshold_percent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	t.Run("rate limit values ignored when disabled", func(t *testing.T) {
		cfg := validConfig()
		cfg.Security.RateLimiting.Enabled = false
		cfg.Security.RateLimiting.RequestsPerMinute = 0
		cfg.Security.RateLimiting.BurstSize = 0
		assert.NoError(t, cfg.Validate())
	})
}
