package equipment

import (
	"context"

	"stockyard/internal/core/id"
	"stockyard/internal/domain"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/stock"
	"stockyard/pkg/logger"
)

// CategoryGroup is a set of items sharing one category, in report order.
type CategoryGroup struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
}

// CompletenessReport is the result of checking a store against the
// mandatory category table.
type CompletenessReport struct {
	WarehouseID string           `json:"warehouseId"`
	Complete    bool             `json:"complete"`
	Missing     []CategoryConfig `json:"missing"`
	Groups      []CategoryGroup  `json:"groups"`
}

// Service assembles completeness reports from the stock ledger and the
// product catalog.
type Service struct {
	stock    *stock.Service
	products *product.Service
}

// NewService creates the equipment service.
func NewService(stockSvc *stock.Service, products *product.Service) *Service {
	return &Service{
		stock:    stockSvc,
		products: products,
	}
}

// Completeness builds the report for one warehouse: which mandatory
// categories are covered by in-stock products and which are missing.
func (s *Service) Completeness(ctx context.Context, warehouseID id.ID) (*CompletenessReport, error) {
	entries, _, err := s.stock.List(ctx, stock.ListFilter{
		WarehouseID: &warehouseID,
		Limit:       10000,
	})
	if err != nil {
		return nil, err
	}

	productIDs := make([]id.ID, 0, len(entries))
	for _, e := range entries {
		if e.Quantity > 0 {
			productIDs = append(productIDs, e.ProductID)
		}
	}

	items := make([]Item, 0, len(productIDs))
	if len(productIDs) > 0 {
		result, err := s.products.List(ctx, domain.ListFilter{
			IDs:   productIDs,
			Limit: len(productIDs),
		})
		if err != nil {
			return nil, err
		}

		byID := make(map[string]*product.Product, len(result.Items))
		for _, p := range result.Items {
			byID[p.ID.String()] = p
		}

		for _, pid := range productIDs {
			p, ok := byID[pid.String()]
			if !ok {
				// Entry references a product removed from the catalog.
				logger.Warn(ctx, "stock entry references unknown product", "product_id", pid.String())
				continue
			}
			items = append(items, Item{
				ID:       p.ID.String(),
				Name:     p.Name,
				Category: p.Category,
			})
		}
	}

	missing := MissingMandatory(items)

	order, grouped := GroupByCategory(items)
	groups := make([]CategoryGroup, 0, len(order))
	for _, cat := range order {
		groups = append(groups, CategoryGroup{Category: cat, Items: grouped[cat]})
	}

	return &CompletenessReport{
		WarehouseID: warehouseID.String(),
		Complete:    len(missing) == 0,
		Missing:     missing,
		Groups:      groups,
	}, nil
}
