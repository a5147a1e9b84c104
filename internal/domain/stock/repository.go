package stock

import (
	"context"

	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
)

// ListFilter narrows stock ledger queries.
type ListFilter struct {
	WarehouseID *id.ID
	ProductID   *id.ID
	BelowMin    bool
	Limit       int
	Offset      int
}

// Repository defines data access for the stock ledger and the
// movement journal.
type Repository interface {
	// GetByID returns a ledger entry by its surrogate key.
	// Returns pgx.ErrNoRows when not found.
	GetByID(ctx context.Context, entryID id.ID) (*entity.StockEntry, error)

	// GetByKey returns the entry for a (product, warehouse) pair.
	// Returns pgx.ErrNoRows when no entry exists yet.
	GetByKey(ctx context.Context, productID, warehouseID id.ID) (*entity.StockEntry, error)

	// GetByKeyForUpdate locks the entry row for the current transaction.
	GetByKeyForUpdate(ctx context.Context, productID, warehouseID id.ID) (*entity.StockEntry, error)

	// List returns entries matching the filter plus a total count.
	List(ctx context.Context, filter ListFilter) ([]*entity.StockEntry, int, error)

	// Create inserts a new ledger entry.
	Create(ctx context.Context, entry *entity.StockEntry) error

	// Update persists quantity and threshold changes.
	Update(ctx context.Context, entry *entity.StockEntry) error

	// Delete removes a ledger entry.
	Delete(ctx context.Context, entryID id.ID) error

	// CreateMovements writes journal rows in bulk.
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error
}
