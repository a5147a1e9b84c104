// Package document_repo provides PostgreSQL repositories for workflow
// documents and their line tables.
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
	"stockyard/internal/domain/documents/request"
	"stockyard/internal/infrastructure/storage/postgres"
)

const (
	requestTable     = "doc_requests"
	requestLineTable = "doc_request_lines"
)

// RequestRepo implements request.Repository.
type RequestRepo struct {
	txManager *postgres.TxManager
	docCols   []string
}

var _ request.Repository = (*RequestRepo)(nil)

// NewRequestRepo creates a request document repository.
func NewRequestRepo(txManager *postgres.TxManager) *RequestRepo {
	return &RequestRepo{
		txManager: txManager,
		docCols:   postgres.ExtractDBColumns[request.Request](),
	}
}

func (r *RequestRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the document together with its lines.
func (r *RequestRepo) Create(ctx context.Context, doc *request.Request) error {
	data := postgres.StructToMap(doc)

	filtered := make(map[string]any, len(r.docCols))
	for _, col := range r.docCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(requestTable).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert request: %w", err)
	}

	return r.insertLines(ctx, doc.ID, doc.Lines)
}

// GetByID returns a document with lines loaded.
func (r *RequestRepo) GetByID(ctx context.Context, docID id.ID) (*request.Request, error) {
	sql, args, err := r.builder().
		Select(r.docCols...).
		From(requestTable).
		Where(squirrel.Eq{"id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)

	var doc request.Request
	if err := pgxscan.Get(ctx, querier, &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	lines, err := r.loadLines(ctx, docID)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines

	return &doc, nil
}

// Update persists document fields and replaces lines, with optimistic
// locking on the version column.
func (r *RequestRepo) Update(ctx context.Context, doc *request.Request) error {
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
		Update(requestTable).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": doc.ID, "version": version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	if result.RowsAffected() == 0 {
		exists, existsErr := r.exists(ctx, doc.ID)
		if existsErr == nil && !exists {
			return pgx.ErrNoRows
		}
		return apperror.NewConcurrentModification("request", doc.ID.String())
	}

	if err := r.deleteLines(ctx, doc.ID); err != nil {
		return err
	}
	return r.insertLines(ctx, doc.ID, doc.Lines)
}

// UpdateStatus writes only the status and audit columns.
func (r *RequestRepo) UpdateStatus(ctx context.Context, docID id.ID, status, updatedBy string) error {
	sql, args, err := r.builder().
		Update(requestTable).
		Set("status", status).
		Set("updated_by", updatedBy).
		Set("updated_at", time.Now().UTC()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// List returns documents (without lines) plus a total count.
func (r *RequestRepo) List(ctx context.Context, filter request.ListFilter) ([]*request.Request, int, error) {
	q := r.builder().
		Select(r.docCols...).
		From(requestTable).
		Where(squirrel.Eq{"deletion_mark": false})

	if filter.Kind != nil {
		q = q.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
	}
	if filter.AssigneeID != nil {
		q = q.Where(squirrel.Eq{"assignee_id": *filter.AssigneeID})
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

	var docs []*request.Request
	if err := pgxscan.Select(ctx, querier, &docs, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}

	return docs, total, nil
}

// SetDeletionMark toggles the soft-delete flag.
func (r *RequestRepo) SetDeletionMark(ctx context.Context, docID id.ID, marked bool) error {
	sql, args, err := r.builder().
		Update(requestTable).
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

func (r *RequestRepo) exists(ctx context.Context, docID id.ID) (bool, error) {
	sql, args, err := r.builder().
		Select("1").
		From(requestTable).
		Where(squirrel.Eq{"id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *RequestRepo) loadLines(ctx context.Context, docID id.ID) ([]request.Line, error) {
	sql, args, err := r.builder().
		Select("line_id", "product_id", "quantity", "unit_price").
		From(requestLineTable).
		Where(squirrel.Eq{"doc_id": docID}).
		OrderBy("line_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	var lines []request.Line
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("load request lines: %w", err)
	}

	return lines, nil
}

func (r *RequestRepo) insertLines(ctx context.Context, docID id.ID, lines []request.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder().
		Insert(requestLineTable).
		Columns("doc_id", "line_id", "product_id", "quantity", "unit_price")

	for i, line := range lines {
		q = q.Values(docID, i+1, line.ProductID, line.Quantity, line.UnitPrice)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert request lines: %w", err)
	}

	return nil
}

func (r *RequestRepo) deleteLines(ctx context.Context, docID id.ID) error {
	sql, args, err := r.builder().
		Delete(requestLineTable).
		Where(squirrel.Eq{"doc_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build lines delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete request lines: %w", err)
	}

	return nil
}
