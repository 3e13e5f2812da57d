package metrics

import (
	"fmt"
	"time"
)

// HealthStatus represents the health status of a component
type HealthStatus struct {
	Status    string                 `json:"status"` // "healthy", "degraded", "unhealthy"
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// HealthReport represents the overall health report
type HealthReport struct {
	Status     string                  `json:"status"`
	Message    string                  `json:"message"`
	Timestamp  time.Time               `json:"timestamp"`
	Uptime     string                  `json:"uptime"`
	Components map[string]HealthStatus `json:"components"`
}

// HealthChecker aggregates registered component checks.
// Register all checks before serving; the check map is read
// concurrently afterwards.
type HealthChecker struct {
	checks map[string]func() HealthStatus
}

// NewHealthChecker creates a new health checker
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]func() HealthStatus),
	}
}

// RegisterCheck registers a component health check
func (h *HealthChecker) RegisterCheck(name string, check func() HealthStatus) {
	h.checks[name] = check
}

// Overall runs every registered check and returns the aggregate report
func (h *HealthChecker) Overall() HealthReport {
	components := make(map[string]HealthStatus, len(h.checks))
	for name, check := range h.checks {
		components[name] = check()
	}

	status, message := calculateOverallStatus(components)

	return HealthReport{
		Status:     status,
		Message:    message,
		Timestamp:  time.Now(),
		Uptime:     time.Since(startTime).Round(time.Second).String(),
		Components: components,
	}
}

// calculateOverallStatus determines the overall health status based on component statuses
func calculateOverallStatus(components map[string]HealthStatus) (string, string) {
	degradedCount := 0
	unhealthyCount := 0
	totalCount := len(components)

	for _, status := range components {
		switch status.Status {
		case "degraded":
			degradedCount++
		case "unhealthy":
			unhealthyCount++
		}
	}

	if unhealthyCount > 0 {
		return "unhealthy", fmt.Sprintf("%d/%d components unhealthy", unhealthyCount, totalCount)
	}

	if degradedCount > 0 {
		return "degraded", fmt.Sprintf("%d/%d components degraded", degradedCount, totalCount)
	}

	return "healthy", fmt.Sprintf("All %d components healthy", totalCount)
}

// startTime tracks when the application started
var startTime = time.Now()

// NewHealthStatus creates a new health status
func NewHealthStatus(status, message string) HealthStatus {
	return HealthStatus{
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithDetail adds a single detail to a health status
func (h HealthStatus) WithDetail(key string, value interface{}) HealthStatus {
	if h.Details == nil {
		h.Details = make(map[string]interface{})
	}

	h.Details[key] = value
	return h
}

// IsHealthy returns true if the status is healthy
func (h HealthStatus) IsHealthy() bool {
	return h.Status == "healthy"
}
