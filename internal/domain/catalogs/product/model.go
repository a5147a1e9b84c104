package product

import (
	"context"
	"strings"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/types"
)

// Product is a catalog item describing a stockable good or piece of
// equipment. Category links it to the equipment category taxonomy.
type Product struct {
	entity.Catalog

	// Category holds the category code (e.g. "SERVER", "CABLE")
	Category string `db:"category" json:"category"`

	// Barcode is used by the scanning kiosk flow for lookup (nullable)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// SerialNumber for serialized equipment (nullable)
	SerialNumber *string `db:"serial_number" json:"serialNumber,omitempty"`

	// Unit is the unit of measure (pcs, m, kg)
	Unit string `db:"unit" json:"unit"`

	// Price is the reference purchase price
	Price types.Money `db:"price" json:"price"`

	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with defaults applied.
func NewProduct(code, name, category string) *Product {
	return &Product{
		Catalog:  entity.NewCatalog(code, name),
		Category: category,
		Unit:     "pcs",
		Price:    types.ZeroMoney(),
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(p.Category) == "" {
		return apperror.NewValidation("product category is required").
			WithDetail("field", "category")
	}

	if p.Barcode != nil && strings.TrimSpace(*p.Barcode) == "" {
		return apperror.NewValidation("barcode cannot be blank").
			WithDetail("field", "barcode")
	}

	return nil
}

// HasBarcode returns true if the product can be found by scanning.
func (p *Product) HasBarcode() bool {
	return p.Barcode != nil && *p.Barcode != ""
}
