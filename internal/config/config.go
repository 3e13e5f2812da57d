package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Security   SecurityConfig   `mapstructure:"security"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
	Mode string `mapstructure:"mode"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	EnableCORS     bool                    `mapstructure:"enable_cors"`
	AllowedOrigins []string                `mapstructure:"allowed_origins"`
	RateLimiting   SecurityRateLimitConfig `mapstructure:"rate_limiting"`
}

// SecurityRateLimitConfig contains rate limiting configuration
type SecurityRateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	BurstSize         int  `mapstructure:"burst_size"`
}

// MonitoringConfig contains monitoring and metrics configuration
type MonitoringConfig struct {
	Enabled    bool                       `mapstructure:"enabled"`
	Prometheus MonitoringPrometheusConfig `mapstructure:"prometheus"`
}

// MonitoringPrometheusConfig contains Prometheus configuration
type MonitoringPrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AnalysisConfig contains report engine configuration
type AnalysisConfig struct {
	NormalizerRulesPath string             `mapstructure:"normalizer_rules_path"`
	MaxRows             int                `mapstructure:"max_rows"`
	Schema              SchemaConfig       `mapstructure:"schema"`
	Report              ReportLimitsConfig `mapstructure:"report"`
}

// SchemaConfig contains column detection configuration
type SchemaConfig struct {
	PreferredDateColumns []string `mapstructure:"preferred_date_columns"`
	PreferredTextColumns []string `mapstructure:"preferred_text_columns"`
	DateMinRatio         float64  `mapstructure:"date_min_ratio"`
	TextMinAvgLength     float64  `mapstructure:"text_min_avg_length"`
}

// ReportLimitsConfig contains component sizing configuration
type ReportLimitsConfig struct {
	MaxCategoryItems             int      `mapstructure:"max_category_items"`
	MaxDailyBreakdownDays        int      `mapstructure:"max_daily_breakdown_days"`
	MaxMonthlyDistributionMonths int      `mapstructure:"max_monthly_distribution_months"`
	MaxSummaryItems              int      `mapstructure:"max_summary_items"`
	ChangeThresholdPercent       float64  `mapstructure:"change_threshold_percent"`
	MonthlyDistributionColumns   []string `mapstructure:"monthly_distribution_columns"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set defaults
	setDefaults()

	// Read environment variables
	viper.AutomaticEnv()

	// Override specific values from env
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("server.host", "HOST")
	viper.BindEnv("server.mode", "VIZLET_MODE")
	viper.BindEnv("logging.level", "LOG_LEVEL")
	viper.BindEnv("security.allowed_origins", "VIZLET_ALLOWED_ORIGINS")
	viper.BindEnv("security.enable_cors", "VIZLET_ENABLE_CORS")
	viper.BindEnv("security.rate_limiting.enabled", "VIZLET_RATE_LIMITING_ENABLED")
	viper.BindEnv("monitoring.prometheus.enabled", "VIZLET_METRICS_ENABLED")
	viper.BindEnv("analysis.normalizer_rules_path", "VIZLET_NORMALIZER_RULES")
	viper.BindEnv("analysis.max_rows", "VIZLET_MAX_ROWS")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration for completeness and correctness
func (c *Config) Validate() error {
	var errors []string

	// Validate server configuration
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errors = append(errors, "server.port must be between 1 and 65535")
	}
	if c.Server.Host == "" {
		errors = append(errors, "server.host is required")
	}

	// Validate rate limiting configuration if enabled
	if c.Security.RateLimiting.Enabled {
		if c.Security.RateLimiting.RequestsPerMinute <= 0 {
			errors = append(errors, "security.rate_limiting.requests_per_minute must be greater than 0 when enabled")
		}
		if c.Security.RateLimiting.BurstSize <= 0 {
			errors = append(errors, "security.rate_limiting.burst_size must be greater than 0 when enabled")
		}
	}

	// Validate Prometheus configuration if enabled
	if c.Monitoring.Prometheus.Enabled && !strings.HasPrefix(c.Monitoring.Prometheus.Path, "/") {
		errors = append(errors, "monitoring.prometheus.path must start with /")
	}

	// Validate analysis configuration
	if c.Analysis.MaxRows < 0 {
		errors = append(errors, "analysis.max_rows must be non-negative")
	}
	if c.Analysis.Schema.DateMinRatio <= 0 || c.Analysis.Schema.DateMinRatio > 1 {
		errors = append(errors, "analysis.schema.date_min_ratio must be between 0 and 1")
	}
	if c.Analysis.Schema.TextMinAvgLength < 0 {
		errors = append(errors, "analysis.schema.text_min_avg_length must be non-negative")
	}
	if c.Analysis.Report.MaxCategoryItems <= 0 {
		errors = append(errors, "analysis.report.max_category_items must be greater than 0")
	}
	if c.Analysis.Report.MaxDailyBreakdownDays <= 0 {
		errors = append(errors, "analysis.report.max_daily_breakdown_days must be greater than 0")
	}
	if c.Analysis.Report.MaxMonthlyDistributionMonths <= 0 {
		errors = append(errors, "analysis.report.max_monthly_distribution_months must be greater than 0")
	}
	if c.Analysis.Report.MaxSummaryItems <= 0 {
		errors = append(errors, "analysis.report.max_summary_items must be greater than 0")
	}
	if c.Analysis.Report.ChangeThresholdPercent < 0 {
		errors = append(errors, "analysis.report.change_threshold_percent must be non-negative")
	}

	// If there are validation errors, return them
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.mode", "development")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.allowed_origins", []string{"*"})
	viper.SetDefault("security.rate_limiting.enabled", true)
	viper.SetDefault("security.rate_limiting.requests_per_minute", 60)
	viper.SetDefault("security.rate_limiting.burst_size", 10)

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.prometheus.enabled", true)
	viper.SetDefault("monitoring.prometheus.path", "/metrics")

	// Analysis defaults
	viper.SetDefault("analysis.normalizer_rules_path", "./configs/normalizer.yaml")
	viper.SetDefault("analysis.max_rows", 0)

	// Schema detection defaults
	viper.SetDefault("analysis.schema.preferred_date_columns", []string{"날짜", "date", "일자", "접수일", "작성일"})
	viper.SetDefault("analysis.schema.preferred_text_columns", []string{"문의 내용", "content", "내용", "설명", "description", "메모"})
	viper.SetDefault("analysis.schema.date_min_ratio", 0.5)
	viper.SetDefault("analysis.schema.text_min_avg_length", 20.0)

	// Report sizing defaults
	viper.SetDefault("analysis.report.max_category_items", 5)
	viper.SetDefault("analysis.report.max_daily_breakdown_days", 10)
	viper.SetDefault("analysis.report.max_monthly_distribution_months", 12)
	viper.SetDefault("analysis.report.max_summary_items", 4)
	viper.SetDefault("analysis.report.change_threshold_percent", 0.1)
	viper.SetDefault("analysis.report.monthly_distribution_columns", []string{"여행일", "여행일자"})
}
