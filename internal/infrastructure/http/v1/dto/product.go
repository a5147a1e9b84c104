package dto

import (
	"github.com/shopspring/decimal"

	"stockyard/internal/domain/catalogs/product"
)

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category" binding:"required"`
	Barcode      *string         `json:"barcode"`
	SerialNumber *string         `json:"serialNumber"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	Description  *string         `json:"description"`
}

// ToModel builds a new domain product.
func (r *CreateProductRequest) ToModel() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Category)
	p.Barcode = r.Barcode
	p.SerialNumber = r.SerialNumber
	if r.Unit != "" {
		p.Unit = r.Unit
	}
	if !r.Price.IsZero() {
		p.Price = r.Price
	}
	p.Description = r.Description
	return p
}

// UpdateProductRequest for updating products.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	Barcode      *string          `json:"barcode"`
	SerialNumber *string          `json:"serialNumber"`
	Unit         *string          `json:"unit"`
	Price        *decimal.Decimal `json:"price"`
	Description  *string          `json:"description"`
	Version      int              `json:"version" binding:"required,min=1"`
}

// Apply merges the update onto an existing product.
func (r *UpdateProductRequest) Apply(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Barcode != nil {
		p.Barcode = r.Barcode
	}
	if r.SerialNumber != nil {
		p.SerialNumber = r.SerialNumber
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	p.SetVersion(r.Version)
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	BaseFilter
	Category string `form:"category"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	CatalogResponse
	Category     string          `json:"category"`
	Barcode      *string         `json:"barcode,omitempty"`
	SerialNumber *string         `json:"serialNumber,omitempty"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	Description  *string         `json:"description,omitempty"`
}

// FromProduct creates response from domain product.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Category:        p.Category,
		Barcode:         p.Barcode,
		SerialNumber:    p.SerialNumber,
		Unit:            p.Unit,
		Price:           p.Price,
		Description:     p.Description,
	}
}

// FromProducts maps a list of products.
func FromProducts(items []*product.Product) []*ProductResponse {
	out := make([]*ProductResponse, len(items))
	for i, p := range items {
		out[i] = FromProduct(p)
	}
	return out
}
