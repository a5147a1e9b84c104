package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/infrastructure/storage/postgres"
)

const categoryTable = "cat_categories"

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

var _ category.Repository = (*CategoryRepo)(nil)

// NewCategoryRepo creates a category repository.
func NewCategoryRepo(txManager *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			categoryTable,
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return &category.Category{} },
		),
	}
}

// ListMandatory returns mandatory categories ordered for display.
func (r *CategoryRepo) ListMandatory(ctx context.Context) ([]*category.Category, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[category.Category]()...).
		From(categoryTable).
		Where(squirrel.Eq{"mandatory": true, "deletion_mark": false}).
		OrderBy("sort_order ASC")

	return r.FindMany(ctx, q)
}

// ListChildren returns direct children of a parent category.
func (r *CategoryRepo) ListChildren(ctx context.Context, parentID string) ([]*category.Category, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[category.Category]()...).
		From(categoryTable).
		Where(squirrel.Eq{"parent_id": parentID, "deletion_mark": false}).
		OrderBy("sort_order ASC")

	return r.FindMany(ctx, q)
}
