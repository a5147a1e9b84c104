package reports

import (
	"context"

	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/catalogs/warehouse"
)

// CatalogResolver resolves display names through the catalog services.
type CatalogResolver struct {
	products   *product.Service
	warehouses *warehouse.Service
}

var _ NameResolver = (*CatalogResolver)(nil)

// NewCatalogResolver creates a resolver backed by the catalogs.
func NewCatalogResolver(products *product.Service, warehouses *warehouse.Service) *CatalogResolver {
	return &CatalogResolver{
		products:   products,
		warehouses: warehouses,
	}
}

func (r *CatalogResolver) ProductName(ctx context.Context, productID id.ID) (string, string, error) {
	p, err := r.products.GetByID(ctx, productID)
	if err != nil {
		return "", "", err
	}
	return p.Code, p.Name, nil
}

func (r *CatalogResolver) WarehouseName(ctx context.Context, warehouseID id.ID) (string, error) {
	wh, err := r.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return "", err
	}
	return wh.Name, nil
}
