package entity

import (
	"time"

	"stockyard/internal/core/id"
)

// RecordType defines movement direction for the stock journal.
type RecordType string

const (
	// RecordTypeReceipt increases an entry's quantity
	RecordTypeReceipt RecordType = "receipt"
	// RecordTypeExpense decreases an entry's quantity
	RecordTypeExpense RecordType = "expense"
)

// StockEntry is the ledger row tracking the quantity of one product held at
// one warehouse. At most one entry exists per (product, warehouse) pair.
//
// Quantities are whole units (equipment counts), never fractional.
type StockEntry struct {
	ID          id.ID     `db:"id" json:"id"`
	ProductID   id.ID     `db:"product_id" json:"productId"`
	WarehouseID id.ID     `db:"warehouse_id" json:"warehouseId"`
	Quantity    int       `db:"quantity" json:"quantity"`
	MinQuantity int       `db:"min_quantity" json:"minQuantity"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// NewStockEntry creates a ledger entry for the first receipt of a product at
// a warehouse. MinQuantity starts at zero until set by an administrator.
func NewStockEntry(productID, warehouseID id.ID, quantity int) StockEntry {
	return StockEntry{
		ID:          id.New(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		UpdatedAt:   time.Now().UTC(),
	}
}

// BelowMinimum reports whether the entry has fallen under its threshold.
func (e *StockEntry) BelowMinimum() bool {
	return e.MinQuantity > 0 && e.Quantity < e.MinQuantity
}

// StockMovement is one row of the stock journal. Movements are immutable:
// they are written when a receiving batch or adjustment is applied and are
// never updated afterwards.
type StockMovement struct {
	// LineID is unique identifier for this movement line (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// RecorderID identifies the operation that produced the movement
	// (receiving batch id, adjustment id)
	RecorderID id.ID `db:"recorder_id" json:"recorderId"`

	// RecorderType names the producing operation (e.g. "ReceivingBatch")
	RecorderType string `db:"recorder_type" json:"recorderType"`

	// RecordType: receipt or expense
	RecordType RecordType `db:"record_type" json:"recordType"`

	// Dimensions
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID `db:"product_id" json:"productId"`

	// Quantity moved (always positive; direction comes from RecordType)
	Quantity int `db:"quantity" json:"quantity"`

	// CreatedAt is when the movement was recorded
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewStockMovement creates a journal row.
func NewStockMovement(
	recorderID id.ID,
	recorderType string,
	recordType RecordType,
	warehouseID, productID id.ID,
	quantity int,
) StockMovement {
	return StockMovement{
		LineID:       id.New(),
		RecorderID:   recorderID,
		RecorderType: recorderType,
		RecordType:   recordType,
		WarehouseID:  warehouseID,
		ProductID:    productID,
		Quantity:     quantity,
		CreatedAt:    time.Now().UTC(),
	}
}

// SignedQuantity returns quantity with sign based on record type.
// Receipt = positive, Expense = negative.
func (m *StockMovement) SignedQuantity() int {
	if m.RecordType == RecordTypeExpense {
		return -m.Quantity
	}
	return m.Quantity
}
