package category

import (
	"context"

	"stockyard/internal/domain"
)

// Repository defines data access for the Category catalog.
type Repository interface {
	domain.CatalogRepository[*Category]

	// ListMandatory returns non-deleted categories with the mandatory
	// flag set, ordered by sort_order.
	ListMandatory(ctx context.Context) ([]*Category, error)

	// ListChildren returns direct children of a parent category.
	ListChildren(ctx context.Context, parentID string) ([]*Category, error)
}
