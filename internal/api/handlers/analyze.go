package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vizlet-labs/vizlet-backend-go/internal/core/report"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/schema"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/tabular"
	apperrors "github.com/vizlet-labs/vizlet-backend-go/pkg/errors"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/utils"
)

// AnalyzeRequest is the analysis request body. Rows stays raw JSON so the
// tabular decoder controls how rows are interpreted.
type AnalyzeRequest struct {
	Rows       json.RawMessage `json:"rows"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	ReportType string          `json:"reportType"`
}

// Analyze builds the infographic component sequence for one dataset and
// reporting window.
func (h *Handlers) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.WithDetails(apperrors.ErrMalformedRows, err.Error()))
		c.Abort()
		return
	}

	if req.Year < 1 || req.Month < 1 || req.Month > 12 {
		c.Error(apperrors.WithDetails(apperrors.ErrInvalidPeriod,
			fmt.Sprintf("year=%d month=%d", req.Year, req.Month)))
		c.Abort()
		return
	}

	reportType, err := report.ParseReportType(req.ReportType)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	table, err := tabular.ParseRows(req.Rows)
	if err != nil {
		c.Error(apperrors.WithDetails(apperrors.ErrMalformedRows, err.Error()))
		c.Abort()
		return
	}
	if max := h.config.Analysis.MaxRows; max > 0 && len(table.Rows) > max {
		c.Error(apperrors.WithDetails(apperrors.ErrTooManyRows,
			fmt.Sprintf("%d rows exceed the limit of %d", len(table.Rows), max)))
		c.Abort()
		return
	}

	sch := schema.Detect(table, h.detectOpts)

	start := time.Now()
	rep, err := h.engine.BuildReport(table, sch, req.Year, req.Month, reportType)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	if h.collector != nil {
		h.collector.RecordAnalysis(string(rep.ReportType), rep.Fallback, time.Since(start), len(table.Rows))
		for _, comp := range rep.Components {
			h.collector.RecordComponent(string(comp.Type))
		}
	}

	meta := gin.H{
		"year":        rep.Year,
		"month":       rep.Month,
		"report_type": rep.ReportType,
		"row_count":   len(table.Rows),
	}
	if rep.Fallback != "" {
		meta["fallback"] = rep.Fallback
	}
	utils.SendSuccessWithMeta(c, rep.Components, meta)
}
