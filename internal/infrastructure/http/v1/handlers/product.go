package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// ProductHTTPHandler serves the product catalog endpoints.
type ProductHTTPHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler wires the product service into the generic catalog
// handler plus the category listing endpoint.
func NewProductHandler(
	base *BaseHandler,
	service *product.Service,
) *ProductHTTPHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToModel()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.Apply(existing)
			return existing
		},

		MapToDTO: func(p *product.Product) any {
			return dto.FromProduct(p)
		},
	}

	return &ProductHTTPHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ListByCategory handles GET /products/by-category/:code.
func (h *ProductHTTPHandler) ListByCategory(c *gin.Context) {
	items, err := h.service.ListByCategory(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromProducts(items)})
}
