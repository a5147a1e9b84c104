package product

import (
	"context"

	"stockyard/internal/domain"
)

// Repository defines data access for the Product catalog.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetByBarcode finds a product by its scan barcode.
	// Returns pgx.ErrNoRows when no product carries the barcode.
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)

	// ListByCategory returns non-deleted products in a category.
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
}
