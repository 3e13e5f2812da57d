package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Response represents a standard API response
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
	Meta      interface{} `json:"meta,omitempty"`
}

// ErrorResponse represents an enhanced error response with additional context
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Code      int         `json:"code"`
	Timestamp string      `json:"timestamp"`
	Request   RequestInfo `json:"request"`
	Details   interface{} `json:"details,omitempty"`
}

// RequestInfo provides context about the failed request
type RequestInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Query  string `json:"query,omitempty"`
}

// SendSuccess sends a successful response
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// SendSuccessWithMeta sends a successful response with metadata
func SendSuccessWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// SendError sends an error response with enhanced context
func SendError(c *gin.Context, statusCode int, message string) {
	SendErrorWithDetails(c, statusCode, message, nil)
}

// SendErrorWithDetails sends an error response carrying structured details
func SendErrorWithDetails(c *gin.Context, statusCode int, message string, details interface{}) {
	errorResponse := ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      statusCode,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Request: RequestInfo{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Query:  c.Request.URL.RawQuery,
		},
		Details: details,
	}

	// Add helpful suggestions for common errors
	if statusCode == http.StatusNotFound && details == nil {
		suggestions := generateNotFoundSuggestions(c.Request.URL.Path)
		if len(suggestions) > 0 {
			errorResponse.Details = map[string]interface{}{
				"suggestions": suggestions,
				"message":     "The requested endpoint does not exist. Check the suggestions below for similar endpoints.",
			}
		}
	} else if statusCode == http.StatusMethodNotAllowed && details == nil {
		errorResponse.Details = map[string]interface{}{
			"message": "The HTTP method is not supported for this endpoint. Please check the API documentation for supported methods.",
		}
	}

	c.JSON(statusCode, errorResponse)
}

// generateNotFoundSuggestions provides helpful endpoint suggestions for 404 errors
func generateNotFoundSuggestions(path string) []string {
	pathLower := strings.ToLower(path)

	var suggestions []string
	switch {
	case strings.Contains(pathLower, "analy") || strings.Contains(pathLower, "report"):
		suggestions = append(suggestions, "/api/v1/analyze")
	case strings.Contains(pathLower, "schema") || strings.Contains(pathLower, "column") || strings.Contains(pathLower, "detect"):
		suggestions = append(suggestions, "/api/v1/schema")
	case strings.Contains(pathLower, "health") || strings.Contains(pathLower, "status"):
		suggestions = append(suggestions, "/health")
	case strings.Contains(pathLower, "metric") || strings.Contains(pathLower, "prometheus"):
		suggestions = append(suggestions, "/metrics")
	case strings.HasPrefix(pathLower, "/api"):
		suggestions = append(suggestions, "/api/v1/analyze", "/api/v1/schema")
	}

	return suggestions
}
