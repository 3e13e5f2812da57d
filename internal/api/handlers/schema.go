package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/vizlet-labs/vizlet-backend-go/internal/core/schema"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/tabular"
	apperrors "github.com/vizlet-labs/vizlet-backend-go/pkg/errors"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/utils"
)

// SchemaRequest is the schema detection request body.
type SchemaRequest struct {
	Rows json.RawMessage `json:"rows"`
}

// DetectSchema classifies the dataset's columns without building a report.
// Clients use it to preview which columns the analysis will pick up.
func (h *Handlers) DetectSchema(c *gin.Context) {
	var req SchemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.WithDetails(apperrors.ErrMalformedRows, err.Error()))
		c.Abort()
		return
	}

	table, err := tabular.ParseRows(req.Rows)
	if err != nil {
		c.Error(apperrors.WithDetails(apperrors.ErrMalformedRows, err.Error()))
		c.Abort()
		return
	}

	sch := schema.Detect(table, h.detectOpts)
	utils.SendSuccessWithMeta(c, sch, gin.H{
		"row_count":    len(table.Rows),
		"column_count": len(table.Columns),
	})
}
