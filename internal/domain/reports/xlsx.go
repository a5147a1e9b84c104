package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const stockSheet = "Stock"

var stockHeaders = []string{
	"Product code", "Product", "Warehouse", "Quantity", "Min quantity", "Below minimum",
}

// renderStockXLSX turns a stock report into an xlsx workbook.
func renderStockXLSX(report *StockReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(stockSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	for i, h := range stockHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(stockSheet, cell, h); err != nil {
			return nil, err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(stockHeaders), 1)
	if err := f.SetCellStyle(stockSheet, "A1", endHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range report.Rows {
		rowNum := i + 2
		values := []any{
			row.ProductCode,
			row.ProductName,
			row.Warehouse,
			row.Quantity,
			row.MinQuantity,
			row.BelowMinimum,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(stockSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	summaryRow := len(report.Rows) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	_ = f.SetCellValue(stockSheet, cell,
		fmt.Sprintf("Generated %s, %d rows, %d below minimum",
			report.GeneratedAt.Format("2006-01-02 15:04"), report.TotalRows, report.BelowMin))

	if err := f.SetColWidth(stockSheet, "A", "C", 24); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
