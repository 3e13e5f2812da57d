package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vizlet-labs/vizlet-backend-go/pkg/utils"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/version"
)

// Root returns the API banner with the feature list clients probe for.
func (h *Handlers) Root(c *gin.Context) {
	utils.SendSuccess(c, gin.H{
		"message": "Vizlet Analytics API",
		"status":  "running",
		"version": version.GetVersion(),
		"features": []string{
			"cumulative_chart",
			"text_normalization",
			"schema_detection",
		},
	})
}

// Health returns the health status of the service.
func (h *Handlers) Health(c *gin.Context) {
	payload := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "vizlet-backend-go",
		"version":   version.GetVersion(),
	}

	if h.health != nil {
		report := h.health.Overall()
		payload["status"] = report.Status
		payload["uptime"] = report.Uptime
		if len(report.Components) > 0 {
			payload["components"] = report.Components
		}
	}

	utils.SendSuccess(c, payload)
}
