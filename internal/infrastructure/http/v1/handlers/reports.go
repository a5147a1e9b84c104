package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/reports"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves read-side reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Stock handles GET /reports/stock.
func (h *ReportsHandler) Stock(c *gin.Context) {
	warehouseID, belowMin, ok := h.parseStockFilter(c)
	if !ok {
		return
	}

	report, err := h.service.BuildStockReport(c.Request.Context(), warehouseID, belowMin)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportStock handles GET /reports/stock/export - xlsx download.
func (h *ReportsHandler) ExportStock(c *gin.Context) {
	warehouseID, belowMin, ok := h.parseStockFilter(c)
	if !ok {
		return
	}

	data, err := h.service.ExportStockXLSX(c.Request.Context(), warehouseID, belowMin)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("stock-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ReportsHandler) parseStockFilter(c *gin.Context) (*id.ID, bool, bool) {
	var query dto.StockReportFilter
	if !h.BindQuery(c, &query) {
		return nil, false, false
	}

	var warehouseID *id.ID
	if query.WarehouseID != "" {
		parsed, err := id.Parse(query.WarehouseID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid warehouseId format"))
			return nil, false, false
		}
		warehouseID = &parsed
	}

	return warehouseID, query.BelowMin, true
}
