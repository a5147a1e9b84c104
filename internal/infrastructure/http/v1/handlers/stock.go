package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/stock"
	"stockyard/internal/infrastructure/http/v1/dto"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/logger"
)

// StockHandler serves the stock ledger endpoints.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
	audit   *postgres.AuditService
}

// NewStockHandler creates a new stock handler. The audit service may be
// nil; ledger mutations are then not recorded in the audit trail.
func NewStockHandler(base *BaseHandler, service *stock.Service, audit *postgres.AuditService) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// logAudit records a ledger mutation, best effort.
func (h *StockHandler) logAudit(c *gin.Context, entityType string, entityID id.ID, action postgres.AuditAction, changes map[string]any) {
	if h.audit == nil {
		return
	}
	ctx := c.Request.Context()
	if err := h.audit.LogChange(ctx, entityType, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed", "entity_type", entityType, "error", err.Error())
	}
}

// List handles GET /stock.
func (h *StockHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.StockFilter
	if !h.BindQuery(c, &query) {
		return
	}

	filter := stock.ListFilter{
		BelowMin: query.BelowMin,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if query.WarehouseID != "" {
		parsed, err := id.Parse(query.WarehouseID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid warehouseId format"))
			return
		}
		filter.WarehouseID = &parsed
	}
	if query.ProductID != "" {
		parsed, err := id.Parse(query.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &parsed
	}

	entries, total, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dto.FromStockEntries(entries),
		TotalCount: int64(total),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Get handles GET /stock/:productId/:warehouseId.
func (h *StockHandler) Get(c *gin.Context) {
	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}
	warehouseID, err := id.Parse(c.Param("warehouseId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid warehouseId format"))
		return
	}

	entry, err := h.service.Get(c.Request.Context(), productID, warehouseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockEntry(entry))
}

// GetByID handles GET /stock/entries/:id.
func (h *StockHandler) GetByID(c *gin.Context) {
	entryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockEntry(entry))
}

// Create handles POST /stock - a new ledger entry for a pair that has
// none yet.
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.CreateStockEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}
	warehouseID, err := id.Parse(req.WarehouseID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid warehouseId format"))
		return
	}

	entry, err := h.service.Create(c.Request.Context(), productID, warehouseID, req.Quantity, req.MinQuantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.logAudit(c, "stock_entry", entry.ID, postgres.AuditActionCreate, map[string]any{
		"quantity":    entry.Quantity,
		"minQuantity": entry.MinQuantity,
	})

	c.JSON(http.StatusCreated, dto.FromStockEntry(entry))
}

// Delete handles DELETE /stock/entries/:id.
func (h *StockHandler) Delete(c *gin.Context) {
	entryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), entryID); err != nil {
		h.Error(c, err)
		return
	}

	h.logAudit(c, "stock_entry", entryID, postgres.AuditActionDelete, nil)

	c.Status(http.StatusNoContent)
}

// ApplyReceiving handles POST /stock/receiving - the batch reconciler.
func (h *StockHandler) ApplyReceiving(c *gin.Context) {
	var req dto.ReceivingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.ApplyReceiving(c.Request.Context(), req.ToBatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	if warehouseID, err := id.Parse(req.WarehouseID); err == nil {
		h.logAudit(c, "warehouse", warehouseID, postgres.AuditActionReceiving, map[string]any{
			"itemCount":    len(req.Items),
			"updatedCount": result.UpdatedCount,
		})
	}

	c.JSON(http.StatusOK, dto.FromReceivingResult(result))
}

// Adjust handles POST /stock/adjust - signed delta corrections.
func (h *StockHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}
	warehouseID, err := id.Parse(req.WarehouseID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid warehouseId format"))
		return
	}

	entry, err := h.service.Adjust(c.Request.Context(), productID, warehouseID, req.Delta)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.logAudit(c, "stock_entry", entry.ID, postgres.AuditActionAdjustment, map[string]any{
		"delta":    req.Delta,
		"quantity": entry.Quantity,
	})

	c.JSON(http.StatusOK, dto.FromStockEntry(entry))
}

// SetMinQuantity handles PUT /stock/min-quantity.
func (h *StockHandler) SetMinQuantity(c *gin.Context) {
	var req dto.SetMinQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}
	warehouseID, err := id.Parse(req.WarehouseID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid warehouseId format"))
		return
	}

	entry, err := h.service.SetMinQuantity(c.Request.Context(), productID, warehouseID, req.MinQuantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.logAudit(c, "stock_entry", entry.ID, postgres.AuditActionUpdate, map[string]any{
		"minQuantity": req.MinQuantity,
	})

	c.JSON(http.StatusOK, dto.FromStockEntry(entry))
}

// ListBelowMinimum handles GET /stock/below-minimum.
func (h *StockHandler) ListBelowMinimum(c *gin.Context) {
	var warehouseID *id.ID
	if whStr := c.Query("warehouseId"); whStr != "" {
		parsed, err := id.Parse(whStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid warehouseId format"))
			return
		}
		warehouseID = &parsed
	}

	entries, err := h.service.ListBelowMinimum(c.Request.Context(), warehouseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromStockEntries(entries)})
}
