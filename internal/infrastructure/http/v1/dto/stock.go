package dto

import (
	"time"

	"stockyard/internal/core/entity"
	"stockyard/internal/domain/stock"
)

// --- Receiving ---

// ReceivingItemRequest is one line of a receiving batch. ProductID is a
// pointer: scanners sometimes submit lines with the field absent, and the
// reconciler skips those rather than failing the batch.
type ReceivingItemRequest struct {
	ProductID *string `json:"productId"`
	Quantity  int     `json:"quantity"`
}

// ReceivingRequest is the batch submitted by the receiving kiosk.
type ReceivingRequest struct {
	WarehouseID string                 `json:"warehouseId"`
	Items       []ReceivingItemRequest `json:"items"`
}

// ToBatch converts to the domain batch.
func (r *ReceivingRequest) ToBatch() stock.ReceivingBatch {
	items := make([]stock.ReceivingItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = stock.ReceivingItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
	}
	return stock.ReceivingBatch{
		WarehouseID: r.WarehouseID,
		Items:       items,
	}
}

// ReceivingResponse reports the outcome of a receiving batch.
type ReceivingResponse struct {
	Success      bool `json:"success"`
	UpdatedCount int  `json:"updatedCount"`
}

// FromReceivingResult creates response from the domain result.
func FromReceivingResult(r *stock.ReceivingResult) *ReceivingResponse {
	return &ReceivingResponse{
		Success:      r.Success,
		UpdatedCount: r.UpdatedCount,
	}
}

// --- Adjustments ---

// AdjustStockRequest applies a signed delta to one ledger entry.
type AdjustStockRequest struct {
	ProductID   string `json:"productId" binding:"required,uuid"`
	WarehouseID string `json:"warehouseId" binding:"required,uuid"`
	Delta       int    `json:"delta" binding:"required"`
}

// CreateStockEntryRequest creates a ledger entry for a (product, warehouse)
// pair that has none yet.
type CreateStockEntryRequest struct {
	ProductID   string `json:"productId" binding:"required,uuid"`
	WarehouseID string `json:"warehouseId" binding:"required,uuid"`
	Quantity    int    `json:"quantity" binding:"min=0"`
	MinQuantity int    `json:"minQuantity" binding:"min=0"`
}

// SetMinQuantityRequest sets the low-stock threshold for one entry.
type SetMinQuantityRequest struct {
	ProductID   string `json:"productId" binding:"required,uuid"`
	WarehouseID string `json:"warehouseId" binding:"required,uuid"`
	MinQuantity int    `json:"minQuantity" binding:"min=0"`
}

// --- Queries ---

// StockFilter narrows ledger listings.
type StockFilter struct {
	WarehouseID string `form:"warehouseId" binding:"omitempty,uuid"`
	ProductID   string `form:"productId" binding:"omitempty,uuid"`
	BelowMin    bool   `form:"belowMin"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

// StockEntryResponse represents one ledger row.
type StockEntryResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	WarehouseID  string    `json:"warehouseId"`
	Quantity     int       `json:"quantity"`
	MinQuantity  int       `json:"minQuantity"`
	BelowMinimum bool      `json:"belowMinimum"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromStockEntry creates response from a ledger entry.
func FromStockEntry(e *entity.StockEntry) *StockEntryResponse {
	return &StockEntryResponse{
		ID:           e.ID.String(),
		ProductID:    e.ProductID.String(),
		WarehouseID:  e.WarehouseID.String(),
		Quantity:     e.Quantity,
		MinQuantity:  e.MinQuantity,
		BelowMinimum: e.BelowMinimum(),
		UpdatedAt:    e.UpdatedAt,
	}
}

// FromStockEntries maps a list of ledger entries.
func FromStockEntries(items []*entity.StockEntry) []*StockEntryResponse {
	out := make([]*StockEntryResponse, len(items))
	for i, e := range items {
		out[i] = FromStockEntry(e)
	}
	return out
}
