package dto

import (
	"stockyard/internal/domain/catalogs/category"
)

// CreateCategoryRequest for creating categories.
type CreateCategoryRequest struct {
	Code       string  `json:"code" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	LabelShort string  `json:"labelShort"`
	Icon       *string `json:"icon"`
	Mandatory  bool    `json:"mandatory"`
	SortOrder  int     `json:"sortOrder"`
	ParentID   *string `json:"parentId"`
}

// ToModel builds a new domain category.
func (r *CreateCategoryRequest) ToModel() *category.Category {
	c := category.NewCategory(r.Code, r.Name)
	c.LabelShort = r.LabelShort
	c.Icon = r.Icon
	c.Mandatory = r.Mandatory
	c.SortOrder = r.SortOrder
	c.ParentID = r.ParentID
	return c
}

// UpdateCategoryRequest for updating categories.
type UpdateCategoryRequest struct {
	Name       *string `json:"name"`
	LabelShort *string `json:"labelShort"`
	Icon       *string `json:"icon"`
	Mandatory  *bool   `json:"mandatory"`
	SortOrder  *int    `json:"sortOrder"`
	ParentID   *string `json:"parentId"`
	Version    int     `json:"version" binding:"required,min=1"`
}

// Apply merges the update onto an existing category.
func (r *UpdateCategoryRequest) Apply(c *category.Category) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.LabelShort != nil {
		c.LabelShort = *r.LabelShort
	}
	if r.Icon != nil {
		c.Icon = r.Icon
	}
	if r.Mandatory != nil {
		c.Mandatory = *r.Mandatory
	}
	if r.SortOrder != nil {
		c.SortOrder = *r.SortOrder
	}
	if r.ParentID != nil {
		c.ParentID = r.ParentID
	}
	c.SetVersion(r.Version)
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	CatalogResponse
	LabelShort string  `json:"labelShort"`
	Icon       *string `json:"icon,omitempty"`
	Mandatory  bool    `json:"mandatory"`
	SortOrder  int     `json:"sortOrder"`
}

// FromCategory creates response from domain category.
func FromCategory(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		LabelShort:      c.LabelShort,
		Icon:            c.Icon,
		Mandatory:       c.Mandatory,
		SortOrder:       c.SortOrder,
	}
}

// FromCategories maps a list of categories.
func FromCategories(items []*category.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, len(items))
	for i, c := range items {
		out[i] = FromCategory(c)
	}
	return out
}

// CategoryTreeNode is one node of the two-level taxonomy tree.
type CategoryTreeNode struct {
	*CategoryResponse
	Children []*CategoryResponse `json:"children,omitempty"`
}

// FromCategoryTree maps the service tree into responses.
func FromCategoryTree(nodes []*category.Node) []*CategoryTreeNode {
	out := make([]*CategoryTreeNode, len(nodes))
	for i, n := range nodes {
		out[i] = &CategoryTreeNode{
			CategoryResponse: FromCategory(n.Category),
			Children:         FromCategories(n.Children),
		}
	}
	return out
}
