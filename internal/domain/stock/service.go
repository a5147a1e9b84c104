package stock

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/pkg/logger"
)

// RecorderTypeReceiving tags journal rows produced by receiving batches.
const RecorderTypeReceiving = "ReceivingBatch"

// RecorderTypeAdjustment tags journal rows produced by manual adjustments.
const RecorderTypeAdjustment = "Adjustment"

// ReceivingItem is one scanned line of a receiving batch. ProductID is a
// pointer because kiosk clients submit lines for unrecognized barcodes.
type ReceivingItem struct {
	ProductID *string `json:"productId"`
	Quantity  int     `json:"quantity"`
}

// ReceivingBatch is a set of scanned lines destined for one warehouse.
type ReceivingBatch struct {
	WarehouseID string          `json:"warehouseId"`
	Items       []ReceivingItem `json:"items"`
}

// ReceivingResult reports the outcome of an applied batch.
type ReceivingResult struct {
	Success      bool `json:"success"`
	UpdatedCount int  `json:"updatedCount"`
}

// Service provides stock ledger operations: the receiving reconciler,
// manual adjustments, and threshold management.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new stock Service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// ApplyReceiving reconciles a receiving batch into the ledger.
//
// The whole batch is rejected before any mutation when the warehouse is
// missing or the item list is empty. Individual lines without a product
// reference or with non-positive quantity are skipped, not rejected: the
// kiosk submits everything it scanned and the reconciler keeps what it
// can use. All surviving lines are applied in a single transaction, so a
// storage failure on any line leaves the ledger untouched.
func (s *Service) ApplyReceiving(ctx context.Context, batch ReceivingBatch) (*ReceivingResult, error) {
	if batch.WarehouseID == "" {
		return nil, apperror.NewValidation("warehouseId is required").
			WithDetail("field", "warehouseId")
	}
	if len(batch.Items) == 0 {
		return nil, apperror.NewValidation("items must not be empty").
			WithDetail("field", "items")
	}

	warehouseID, err := id.Parse(batch.WarehouseID)
	if err != nil {
		return nil, apperror.NewValidation("invalid warehouseId").
			WithDetail("value", batch.WarehouseID)
	}

	type line struct {
		productID id.ID
		quantity  int
	}

	lines := make([]line, 0, len(batch.Items))
	for i, item := range batch.Items {
		if item.ProductID == nil || *item.ProductID == "" {
			logger.Debug(ctx, "skipping receiving line without product",
				"index", i)
			continue
		}
		if item.Quantity <= 0 {
			logger.Debug(ctx, "skipping receiving line with non-positive quantity",
				"index", i, "productId", *item.ProductID, "quantity", item.Quantity)
			continue
		}
		productID, err := id.Parse(*item.ProductID)
		if err != nil {
			logger.Debug(ctx, "skipping receiving line with malformed product id",
				"index", i, "productId", *item.ProductID)
			continue
		}
		lines = append(lines, line{productID: productID, quantity: item.Quantity})
	}

	batchID := id.New()
	updated := 0

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		movements := make([]entity.StockMovement, 0, len(lines))

		for _, ln := range lines {
			entry, err := s.repo.GetByKeyForUpdate(txCtx, ln.productID, warehouseID)
			switch {
			case err == nil:
				entry.Quantity += ln.quantity
				if err := s.repo.Update(txCtx, entry); err != nil {
					return err
				}
			case errors.Is(err, pgx.ErrNoRows):
				fresh := entity.NewStockEntry(ln.productID, warehouseID, ln.quantity)
				if err := s.repo.Create(txCtx, &fresh); err != nil {
					return err
				}
			default:
				return err
			}

			movements = append(movements, entity.NewStockMovement(
				batchID, RecorderTypeReceiving, entity.RecordTypeReceipt,
				warehouseID, ln.productID, ln.quantity,
			))
			updated++
		}

		if len(movements) > 0 {
			return s.repo.CreateMovements(txCtx, movements)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "receiving batch applied",
		"batchId", batchID.String(),
		"warehouseId", warehouseID.String(),
		"received", len(batch.Items),
		"applied", updated)

	return &ReceivingResult{Success: true, UpdatedCount: updated}, nil
}

// Adjust applies a signed quantity delta to one ledger entry. A negative
// delta that would take the quantity below zero is rejected without
// mutation. A positive delta for a pair with no entry creates one.
func (s *Service) Adjust(ctx context.Context, productID, warehouseID id.ID, delta int) (*entity.StockEntry, error) {
	if delta == 0 {
		return nil, apperror.NewValidation("delta must be non-zero").
			WithDetail("field", "delta")
	}

	var result *entity.StockEntry

	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.repo.GetByKeyForUpdate(txCtx, productID, warehouseID)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			if delta < 0 {
				return apperror.NewInsufficientStock(productID.String(), -delta, 0)
			}
			fresh := entity.NewStockEntry(productID, warehouseID, delta)
			if err := s.repo.Create(txCtx, &fresh); err != nil {
				return err
			}
			entry = &fresh
		} else {
			next := entry.Quantity + delta
			if next < 0 {
				return apperror.NewInsufficientStock(productID.String(), -delta, entry.Quantity)
			}
			entry.Quantity = next
			if err := s.repo.Update(txCtx, entry); err != nil {
				return err
			}
		}

		recordType := entity.RecordTypeReceipt
		qty := delta
		if delta < 0 {
			recordType = entity.RecordTypeExpense
			qty = -delta
		}

		if err := s.repo.CreateMovements(txCtx, []entity.StockMovement{
			entity.NewStockMovement(id.New(), RecorderTypeAdjustment, recordType,
				warehouseID, productID, qty),
		}); err != nil {
			return err
		}

		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Create inserts a new ledger entry for a (product, warehouse) pair.
// The pair is unique: creating an entry that already exists is a conflict,
// receiving or adjustment should be used to change its quantity.
func (s *Service) Create(ctx context.Context, productID, warehouseID id.ID, quantity, minQuantity int) (*entity.StockEntry, error) {
	if id.IsNil(productID) || id.IsNil(warehouseID) {
		return nil, apperror.NewValidation("productId and warehouseId are required")
	}
	if quantity < 0 {
		return nil, apperror.NewValidation("quantity must be non-negative").
			WithDetail("field", "quantity")
	}
	if minQuantity < 0 {
		return nil, apperror.NewValidation("minQuantity must be non-negative").
			WithDetail("field", "minQuantity")
	}

	var result *entity.StockEntry

	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		_, err := s.repo.GetByKeyForUpdate(txCtx, productID, warehouseID)
		if err == nil {
			return apperror.NewDuplicate("stock entry", "productId/warehouseId",
				productID.String()+"/"+warehouseID.String())
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		entry := entity.NewStockEntry(productID, warehouseID, quantity)
		entry.MinQuantity = minQuantity
		if err := s.repo.Create(txCtx, &entry); err != nil {
			return err
		}

		result = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes a ledger entry by its surrogate key. The movement
// journal keeps its rows; only the current balance disappears.
func (s *Service) Delete(ctx context.Context, entryID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, entryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("stock entry", entryID.String())
			}
			return err
		}
		return s.repo.Delete(txCtx, entryID)
	})
}

// GetByID returns the ledger entry with the given surrogate key.
func (s *Service) GetByID(ctx context.Context, entryID id.ID) (*entity.StockEntry, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("stock entry", entryID.String())
		}
		return nil, apperror.NewInternal(err)
	}
	return entry, nil
}

// SetMinQuantity updates the low-stock threshold for one entry.
func (s *Service) SetMinQuantity(ctx context.Context, productID, warehouseID id.ID, minQuantity int) (*entity.StockEntry, error) {
	if minQuantity < 0 {
		return nil, apperror.NewValidation("minQuantity must be non-negative").
			WithDetail("field", "minQuantity")
	}

	var result *entity.StockEntry

	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.repo.GetByKeyForUpdate(txCtx, productID, warehouseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("stock entry", productID.String())
			}
			return err
		}

		entry.MinQuantity = minQuantity
		if err := s.repo.Update(txCtx, entry); err != nil {
			return err
		}

		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Get returns the ledger entry for one (product, warehouse) pair.
func (s *Service) Get(ctx context.Context, productID, warehouseID id.ID) (*entity.StockEntry, error) {
	entry, err := s.repo.GetByKey(ctx, productID, warehouseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("stock entry", productID.String())
		}
		return nil, apperror.NewInternal(err)
	}
	return entry, nil
}

// List returns ledger entries matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*entity.StockEntry, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.NewInternal(err)
	}
	return entries, total, nil
}

// ListBelowMinimum returns entries under their threshold, used by the
// scheduled low-stock sweep and the reports endpoint.
func (s *Service) ListBelowMinimum(ctx context.Context, warehouseID *id.ID) ([]*entity.StockEntry, error) {
	entries, _, err := s.repo.List(ctx, ListFilter{
		WarehouseID: warehouseID,
		BelowMin:    true,
		Limit:       10000,
	})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return entries, nil
}
