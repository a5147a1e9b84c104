package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/documents/delivery"
	"stockyard/internal/infrastructure/storage/postgres"
)

const (
	deliveryTable     = "doc_deliveries"
	deliveryLineTable = "doc_delivery_lines"
)

// DeliveryRepo implements delivery.Repository.
type DeliveryRepo struct {
	txManager *postgres.TxManager
	docCols   []string
}

var _ delivery.Repository = (*DeliveryRepo)(nil)

// NewDeliveryRepo creates a delivery document repository.
func NewDeliveryRepo(txManager *postgres.TxManager) *DeliveryRepo {
	return &DeliveryRepo{
		txManager: txManager,
		docCols:   postgres.ExtractDBColumns[delivery.Delivery](),
	}
}

func (r *DeliveryRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the document together with its lines.
func (r *DeliveryRepo) Create(ctx context.Context, doc *delivery.Delivery) error {
	data := postgres.StructToMap(doc)

	filtered := make(map[string]any, len(r.docCols))
	for _, col := range r.docCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(deliveryTable).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}

	return r.insertLines(ctx, doc.ID, doc.Lines)
}

// GetByID returns a document with lines loaded.
func (r *DeliveryRepo) GetByID(ctx context.Context, docID id.ID) (*delivery.Delivery, error) {
	sql, args, err := r.builder().
		Select(r.docCols...).
		From(deliveryTable).
		Where(squirrel.Eq{"id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)

	var doc delivery.Delivery
	if err := pgxscan.Get(ctx, querier, &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	lines, err := r.loadLines(ctx, docID)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines

	return &doc, nil
}

// Update persists document fields and replaces lines.
func (r *DeliveryRepo) Update(ctx context.Context, doc *delivery.Delivery) error {
	data := postgres.StructToMap(doc)

	version, _ := data["version"].(int)

	filtered := make(map[string]any, len(r.docCols))
	for _, col := range r.docCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(deliveryTable).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": doc.ID, "version": version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("delivery", doc.ID.String())
	}

	if err := r.deleteLines(ctx, doc.ID); err != nil {
		return err
	}
	return r.insertLines(ctx, doc.ID, doc.Lines)
}

// UpdateStatus writes status, delivered_at and audit columns.
func (r *DeliveryRepo) UpdateStatus(ctx context.Context, doc *delivery.Delivery, updatedBy string) error {
	sql, args, err := r.builder().
		Update(deliveryTable).
		Set("status", doc.Status).
		Set("delivered_at", doc.DeliveredAt).
		Set("updated_by", updatedBy).
		Set("updated_at", time.Now().UTC()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": doc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// List returns documents (without lines) plus a total count.
func (r *DeliveryRepo) List(ctx context.Context, filter delivery.ListFilter) ([]*delivery.Delivery, int, error) {
	q := r.builder().
		Select(r.docCols...).
		From(deliveryTable).
		Where(squirrel.Eq{"deletion_mark": false})

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
	}
	if filter.CourierID != nil {
		q = q.Where(squirrel.Eq{"courier_id": *filter.CourierID})
	}
	if filter.RequestID != nil {
		q = q.Where(squirrel.Eq{"request_id": *filter.RequestID})
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

	q = q.OrderBy("date DESC, number DESC")
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

	var docs []*delivery.Delivery
	if err := pgxscan.Select(ctx, querier, &docs, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list deliveries: %w", err)
	}

	return docs, total, nil
}

// SetDeletionMark toggles the soft-delete flag.
func (r *DeliveryRepo) SetDeletionMark(ctx context.Context, docID id.ID, marked bool) error {
	sql, args, err := r.builder().
		Update(deliveryTable).
		Set("deletion_mark", marked).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set deletion mark: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set deletion mark: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *DeliveryRepo) loadLines(ctx context.Context, docID id.ID) ([]delivery.Line, error) {
	sql, args, err := r.builder().
		Select("line_id", "product_id", "quantity").
		From(deliveryLineTable).
		Where(squirrel.Eq{"doc_id": docID}).
		OrderBy("line_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	var lines []delivery.Line
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("load delivery lines: %w", err)
	}

	return lines, nil
}

func (r *DeliveryRepo) insertLines(ctx context.Context, docID id.ID, lines []delivery.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder().
		Insert(deliveryLineTable).
		Columns("doc_id", "line_id", "product_id", "quantity")

	for i, line := range lines {
		q = q.Values(docID, i+1, line.ProductID, line.Quantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert delivery lines: %w", err)
	}

	return nil
}

func (r *DeliveryRepo) deleteLines(ctx context.Context, docID id.ID) error {
	sql, args, err := r.builder().
		Delete(deliveryLineTable).
		Where(squirrel.Eq{"doc_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build lines delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete delivery lines: %w", err)
	}

	return nil
}
