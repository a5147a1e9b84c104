// Package stock_repo provides the PostgreSQL stock ledger repository.
package stock_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/stock"
	"stockyard/internal/infrastructure/storage/postgres"
)

const (
	ledgerTable   = "reg_stock"
	movementTable = "reg_stock_movements"
)

var ledgerCols = []string{"id", "product_id", "warehouse_id", "quantity", "min_quantity", "updated_at"}

var movementCols = []string{
	"line_id", "recorder_id", "recorder_type", "record_type",
	"warehouse_id", "product_id", "quantity", "created_at",
}

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
	batch     *postgres.BatchInserter
}

var _ stock.Repository = (*StockRepo)(nil)

// NewStockRepo creates a stock ledger repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		batch:     postgres.NewBatchInserter(txManager),
	}
}

func (r *StockRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *StockRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(ledgerCols...).From(ledgerTable)
}

// GetByID returns a ledger entry by its surrogate key.
func (r *StockRepo) GetByID(ctx context.Context, entryID id.ID) (*entity.StockEntry, error) {
	return r.getOne(ctx, r.baseSelect().Where(squirrel.Eq{"id": entryID}))
}

// GetByKey returns the entry for a (product, warehouse) pair.
func (r *StockRepo) GetByKey(ctx context.Context, productID, warehouseID id.ID) (*entity.StockEntry, error) {
	return r.getOne(ctx, r.baseSelect().Where(squirrel.Eq{
		"product_id":   productID,
		"warehouse_id": warehouseID,
	}))
}

// GetByKeyForUpdate locks the entry row. Receiving batches and
// adjustments lock before mutating, so concurrent increments against
// the same pair serialize instead of losing updates.
func (r *StockRepo) GetByKeyForUpdate(ctx context.Context, productID, warehouseID id.ID) (*entity.StockEntry, error) {
	return r.getOne(ctx, r.baseSelect().
		Where(squirrel.Eq{
			"product_id":   productID,
			"warehouse_id": warehouseID,
		}).
		Suffix("FOR UPDATE"))
}

func (r *StockRepo) getOne(ctx context.Context, q squirrel.SelectBuilder) (*entity.StockEntry, error) {
	sql, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entry entity.StockEntry
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}

	return &entry, nil
}

// List returns entries matching the filter plus a total count.
func (r *StockRepo) List(ctx context.Context, filter stock.ListFilter) ([]*entity.StockEntry, int, error) {
	q := r.baseSelect()

	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.BelowMin {
		q = q.Where("min_quantity > 0 AND quantity < min_quantity")
	}

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("warehouse_id, product_id")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	var entries []*entity.StockEntry
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list stock: %w", err)
	}

	return entries, total, nil
}

// Create inserts a new ledger entry.
func (r *StockRepo) Create(ctx context.Context, entry *entity.StockEntry) error {
	entry.UpdatedAt = time.Now().UTC()

	sql, args, err := r.builder().
		Insert(ledgerTable).
		Columns(ledgerCols...).
		Values(entry.ID, entry.ProductID, entry.WarehouseID,
			entry.Quantity, entry.MinQuantity, entry.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}

	return nil
}

// Update persists quantity and threshold changes.
func (r *StockRepo) Update(ctx context.Context, entry *entity.StockEntry) error {
	entry.UpdatedAt = time.Now().UTC()

	sql, args, err := r.builder().
		Update(ledgerTable).
		Set("quantity", entry.Quantity).
		Set("min_quantity", entry.MinQuantity).
		Set("updated_at", entry.UpdatedAt).
		Where(squirrel.Eq{"id": entry.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update stock entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete removes a ledger entry.
func (r *StockRepo) Delete(ctx context.Context, entryID id.ID) error {
	sql, args, err := r.builder().
		Delete(ledgerTable).
		Where(squirrel.Eq{"id": entryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete stock entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// CreateMovements writes journal rows over the COPY protocol. Always
// called inside the batch transaction, so the journal commits with the
// ledger mutation.
func (r *StockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	rows := make([][]any, len(movements))
	for i, m := range movements {
		rows[i] = []any{
			m.LineID, m.RecorderID, m.RecorderType, string(m.RecordType),
			m.WarehouseID, m.ProductID, m.Quantity, m.CreatedAt,
		}
	}

	if _, err := r.batch.CopyFromSlice(ctx, movementTable, movementCols, rows); err != nil {
		return fmt.Errorf("insert stock movements: %w", err)
	}

	return nil
}
