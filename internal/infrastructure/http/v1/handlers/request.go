package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/documents/request"
	"stockyard/internal/infrastructure/http/v1/dto"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/logger"
)

// RequestHandler serves purchase/transfer request documents.
type RequestHandler struct {
	*BaseHandler
	service *request.Service
	audit   *postgres.AuditService
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(base *BaseHandler, service *request.Service, audit *postgres.AuditService) *RequestHandler {
	return &RequestHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToModel()
	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromRequest(doc))
}

// Get handles GET /requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.FromRequest(doc))
}

// Update handles PUT /requests/:id.
func (h *RequestHandler) Update(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateRequestRequest
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

	c.JSON(http.StatusOK, dto.FromRequest(doc))
}

// SetStatus handles POST /requests/:id/status.
func (h *RequestHandler) SetStatus(c *gin.Context) {
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
		err := h.audit.LogChange(ctx, "request", docID, postgres.AuditActionStatusChange, map[string]any{
			"status": req.Status,
		})
		if err != nil {
			logger.Warn(ctx, "audit log failed", "entity_type", "request", "error", err.Error())
		}
	}

	h.Success(c, "status updated")
}

// Assign handles POST /requests/:id/assign.
func (h *RequestHandler) Assign(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.AssignRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Assign(c.Request.Context(), docID, req.AssigneeID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "request assigned")
}

// List handles GET /requests.
func (h *RequestHandler) List(c *gin.Context) {
	var query dto.RequestFilter
	if !h.BindQuery(c, &query) {
		return
	}

	filter := request.ListFilter{
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if query.Kind != "" {
		kind := request.Kind(query.Kind)
		filter.Kind = &kind
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}
	if query.WarehouseID != "" {
		filter.WarehouseID = &query.WarehouseID
	}
	if query.AssigneeID != "" {
		filter.AssigneeID = &query.AssigneeID
	}

	docs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dto.FromRequests(docs),
		TotalCount: int64(total),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Delete handles DELETE /requests/:id (soft delete).
func (h *RequestHandler) Delete(c *gin.Context) {
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
