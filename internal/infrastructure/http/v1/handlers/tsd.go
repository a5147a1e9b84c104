package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/stock"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// TSDHandler serves the data collection terminal (scanner kiosk) endpoints.
// The terminal submits receiving batches and looks products up by barcode.
type TSDHandler struct {
	*BaseHandler
	stock    *stock.Service
	products *product.Service
}

// NewTSDHandler creates a new terminal handler.
func NewTSDHandler(base *BaseHandler, stockSvc *stock.Service, products *product.Service) *TSDHandler {
	return &TSDHandler{
		BaseHandler: base,
		stock:       stockSvc,
		products:    products,
	}
}

// Receiving handles POST /tsd/receiving - batch upload from the terminal.
func (h *TSDHandler) Receiving(c *gin.Context) {
	var req dto.ReceivingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.stock.ApplyReceiving(c.Request.Context(), req.ToBatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReceivingResult(result))
}

// ProductByBarcode handles GET /tsd/products?barcode=...
func (h *TSDHandler) ProductByBarcode(c *gin.Context) {
	p, err := h.products.GetByBarcode(c.Request.Context(), c.Query("barcode"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(p))
}
