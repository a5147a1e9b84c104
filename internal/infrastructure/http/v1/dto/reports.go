package dto

// StockReportFilter narrows the stock report.
type StockReportFilter struct {
	WarehouseID string `form:"warehouseId" binding:"omitempty,uuid"`
	BelowMin    bool   `form:"belowMin"`
}
