package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// CategoryHTTPHandler serves the category taxonomy endpoints.
type CategoryHTTPHandler struct {
	*CatalogHandler[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]
	service *category.Service
}

// NewCategoryHandler wires the category service into the generic catalog
// handler plus the tree and mandatory-list endpoints.
func NewCategoryHandler(
	base *BaseHandler,
	service *category.Service,
) *CategoryHTTPHandler {
	config := CatalogHandlerConfig[
		*category.Category,
		dto.CreateCategoryRequest,
		dto.UpdateCategoryRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "category",

		MapCreateDTO: func(req dto.CreateCategoryRequest) *category.Category {
			return req.ToModel()
		},

		MapUpdateDTO: func(req dto.UpdateCategoryRequest, existing *category.Category) *category.Category {
			req.Apply(existing)
			return existing
		},

		MapToDTO: func(cat *category.Category) any {
			return dto.FromCategory(cat)
		},
	}

	return &CategoryHTTPHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// Tree handles GET /categories/tree - the two-level taxonomy.
func (h *CategoryHTTPHandler) Tree(c *gin.Context) {
	nodes, err := h.service.Tree(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromCategoryTree(nodes)})
}

// ListMandatory handles GET /categories/mandatory.
func (h *CategoryHTTPHandler) ListMandatory(c *gin.Context) {
	items, err := h.service.ListMandatory(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromCategories(items)})
}
