package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/documents/delivery"
	"stockyard/internal/infrastructure/http/v1/dto"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/logger"
)

// DeliveryHandler serves delivery documents. Marking a delivery as
// delivered feeds its lines into the stock ledger.
type DeliveryHandler struct {
	*BaseHandler
	service *delivery.Service
	audit   *postgres.AuditService
}

// NewDeliveryHandler creates a new delivery handler.
func NewDeliveryHandler(base *BaseHandler, service *delivery.Service, audit *postgres.AuditService) *DeliveryHandler {
	return &DeliveryHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// Create handles POST /deliveries.
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req dto.CreateDeliveryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToModel()
	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromDelivery(doc))
}

// Get handles GET /deliveries/:id.
func (h *DeliveryHandler) Get(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDelivery(doc))
}

// Update handles PUT /deliveries/:id.
func (h *DeliveryHandler) Update(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateDeliveryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(doc)

	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDelivery(doc))
}

// SetStatus handles POST /deliveries/:id/status.
func (h *DeliveryHandler) SetStatus(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), docID, req.Status); err != nil {
		h.Error(c, err)
		return
	}

	if h.audit != nil {
		ctx := c.Request.Context()
		err := h.audit.LogChange(ctx, "delivery", docID, postgres.AuditActionStatusChange, map[string]any{
			"status": req.Status,
		})
		if err != nil {
			logger.Warn(ctx, "audit log failed", "entity_type", "delivery", "error", err.Error())
		}
	}

	h.Success(c, "status updated")
}

// List handles GET /deliveries.
func (h *DeliveryHandler) List(c *gin.Context) {
	var query dto.DeliveryFilter
	if !h.BindQuery(c, &query) {
		return
	}

	filter := delivery.ListFilter{
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}
	if query.WarehouseID != "" {
		filter.WarehouseID = &query.WarehouseID
	}
	if query.CourierID != "" {
		filter.CourierID = &query.CourierID
	}
	if query.RequestID != "" {
		filter.RequestID = &query.RequestID
	}

	docs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dto.FromDeliveries(docs),
		TotalCount: int64(total),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Delete handles DELETE /deliveries/:id (soft delete).
func (h *DeliveryHandler) Delete(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
