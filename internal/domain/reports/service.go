// Package reports builds read-side stock reports and their XLSX export.
package reports

import (
	"context"
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/stock"
)

// StockRow is one line of the stock report, enriched with display names.
type StockRow struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	ProductCode  string `json:"productCode"`
	WarehouseID  string `json:"warehouseId"`
	Warehouse    string `json:"warehouse"`
	Quantity     int    `json:"quantity"`
	MinQuantity  int    `json:"minQuantity"`
	BelowMinimum bool   `json:"belowMinimum"`
}

// StockReport is the assembled report.
type StockReport struct {
	GeneratedAt time.Time  `json:"generatedAt"`
	Rows        []StockRow `json:"rows"`
	TotalRows   int        `json:"totalRows"`
	BelowMin    int        `json:"belowMinCount"`
}

// NameResolver supplies display names for report rows. Catalog services
// satisfy it through the lookup adapter in the HTTP wiring.
type NameResolver interface {
	ProductName(ctx context.Context, productID id.ID) (code, name string, err error)
	WarehouseName(ctx context.Context, warehouseID id.ID) (string, error)
}

// Service builds stock reports.
type Service struct {
	stock    *stock.Service
	resolver NameResolver
}

// NewService creates a reports Service.
func NewService(stockSvc *stock.Service, resolver NameResolver) *Service {
	return &Service{stock: stockSvc, resolver: resolver}
}

// BuildStockReport assembles the current ledger state, optionally
// narrowed to one warehouse or to entries under their threshold.
func (s *Service) BuildStockReport(ctx context.Context, warehouseID *id.ID, belowMinOnly bool) (*StockReport, error) {
	entries, _, err := s.stock.List(ctx, stock.ListFilter{
		WarehouseID: warehouseID,
		BelowMin:    belowMinOnly,
		Limit:       10000,
	})
	if err != nil {
		return nil, err
	}

	report := &StockReport{
		GeneratedAt: time.Now().UTC(),
		Rows:        make([]StockRow, 0, len(entries)),
	}

	for _, e := range entries {
		row := StockRow{
			ProductID:    e.ProductID.String(),
			WarehouseID:  e.WarehouseID.String(),
			Quantity:     e.Quantity,
			MinQuantity:  e.MinQuantity,
			BelowMinimum: e.BelowMinimum(),
		}

		if s.resolver != nil {
			code, name, err := s.resolver.ProductName(ctx, e.ProductID)
			if err == nil {
				row.ProductCode = code
				row.ProductName = name
			}
			whName, err := s.resolver.WarehouseName(ctx, e.WarehouseID)
			if err == nil {
				row.Warehouse = whName
			}
		}

		if row.BelowMinimum {
			report.BelowMin++
		}
		report.Rows = append(report.Rows, row)
	}

	report.TotalRows = len(report.Rows)
	return report, nil
}

// ExportStockXLSX builds the report and renders it as a workbook.
func (s *Service) ExportStockXLSX(ctx context.Context, warehouseID *id.ID, belowMinOnly bool) ([]byte, error) {
	report, err := s.BuildStockReport(ctx, warehouseID, belowMinOnly)
	if err != nil {
		return nil, err
	}

	data, err := renderStockXLSX(report)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return data, nil
}
