package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/equipment"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// EquipmentHandler serves the equipment completeness endpoints.
type EquipmentHandler struct {
	*BaseHandler
	service *equipment.Service
}

// NewEquipmentHandler creates a new equipment handler.
func NewEquipmentHandler(base *BaseHandler, service *equipment.Service) *EquipmentHandler {
	return &EquipmentHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Completeness handles GET /equipment/completeness?warehouseId=...
func (h *EquipmentHandler) Completeness(c *gin.Context) {
	warehouseID, err := id.Parse(c.Query("warehouseId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid or missing warehouseId"))
		return
	}

	report, err := h.service.Completeness(c.Request.Context(), warehouseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompletenessReport(report))
}

// MandatoryCategories handles GET /equipment/mandatory-categories -
// the static reference table.
func (h *EquipmentHandler) MandatoryCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": equipment.MandatoryCategories()})
}
