package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector implements MetricsCollector using Prometheus metrics
type PrometheusCollector struct {
	config *MetricsConfig

	// HTTP Metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Analysis Metrics
	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	recordsProcessed prometheus.Counter
	componentsBuilt  *prometheus.CounterVec
}

// NewPrometheusCollector creates a new Prometheus metrics collector
func NewPrometheusCollector(config *MetricsConfig) *PrometheusCollector {
	if config == nil {
		config = &MetricsConfig{
			Enabled: true,
			Prefix:  "vizlet",
		}
	}

	prefix := config.Prefix

	collector := &PrometheusCollector{config: config}

	// Initialize HTTP metrics
	collector.httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	collector.httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Initialize analysis metrics
	collector.analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_analyses_total",
			Help: "Total number of analysis requests",
		},
		[]string{"report_type", "fallback"},
	)

	collector.analysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_analysis_duration_seconds",
			Help:    "Report build duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"report_type"},
	)

	collector.recordsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_records_processed_total",
			Help: "Total number of records ingested for analysis",
		},
	)

	collector.componentsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_components_built_total",
			Help: "Total number of infographic components built",
		},
		[]string{"component_type"},
	)

	return collector
}

// RecordHTTPRequest records HTTP request metrics
func (p *PrometheusCollector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if !p.config.Enabled {
		return
	}

	p.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	p.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAnalysis records analysis request metrics
func (p *PrometheusCollector) RecordAnalysis(reportType, fallback string, duration time.Duration, records int) {
	if !p.config.Enabled {
		return
	}

	if fallback == "" {
		fallback = "none"
	}
	p.analysesTotal.WithLabelValues(reportType, fallback).Inc()
	p.analysisDuration.WithLabelValues(reportType).Observe(duration.Seconds())
	if records > 0 {
		p.recordsProcessed.Add(float64(records))
	}
}

// RecordComponent records a built component by type
func (p *PrometheusCollector) RecordComponent(componentType string) {
	if !p.config.Enabled {
		return
	}

	p.componentsBuilt.WithLabelValues(componentType).Inc()
}
