package category

import (
	"context"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
)

// Service provides business logic for the Category catalog.
type Service struct {
	*domain.CatalogService[*Category]
	repo Repository
}

// NewService creates a new Category service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "category",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForSave)
	base.Hooks().OnBeforeUpdate(svc.prepareForSave)

	return svc
}

// prepareForSave enforces code uniqueness and the two-level hierarchy:
// a category's parent must exist and must itself be a root.
func (s *Service) prepareForSave(ctx context.Context, c *Category) error {
	existing, err := s.repo.GetByCode(ctx, c.Code)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if err == nil && existing.ID != c.ID {
		return apperror.NewDuplicate("category", "code", c.Code)
	}

	if c.ParentID == nil || *c.ParentID == "" {
		return nil
	}

	parentID, err := id.Parse(*c.ParentID)
	if err != nil {
		return apperror.NewValidation("invalid parent id").
			WithDetail("value", *c.ParentID)
	}

	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		return err
	}

	if !parent.IsRoot() {
		return apperror.NewBusinessRule("CATEGORY_DEPTH",
			"categories support at most two levels")
	}

	return nil
}

// ListMandatory returns the mandatory categories in display order.
func (s *Service) ListMandatory(ctx context.Context) ([]*Category, error) {
	items, err := s.repo.ListMandatory(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return items, nil
}

// Tree returns root categories with their children attached.
func (s *Service) Tree(ctx context.Context) ([]*Node, error) {
	result, err := s.List(ctx, domain.ListFilter{
		OrderBy: "sort_order",
		Limit:   1000,
	})
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]*Category)
	var roots []*Category
	for _, c := range result.Items {
		if c.IsRoot() {
			roots = append(roots, c)
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}

	nodes := make([]*Node, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, &Node{
			Category: root,
			Children: byParent[root.ID.String()],
		})
	}

	return nodes, nil
}

// Node is a root category with its direct children.
type Node struct {
	Category *Category   `json:"category"`
	Children []*Category `json:"children,omitempty"`
}
