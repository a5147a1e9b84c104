package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
	"stockyard/pkg/numerator"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PRD"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}

	if p.HasBarcode() {
		existing, err := s.repo.GetByBarcode(ctx, *p.Barcode)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if existing != nil && existing.ID != p.ID {
			return apperror.NewDuplicate("product", "barcode", *p.Barcode)
		}
	}

	return nil
}

// GetByBarcode finds a product by its scan barcode for the kiosk flow.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	if barcode == "" {
		return nil, apperror.NewValidation("barcode is required")
	}

	p, err := s.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("product", barcode)
		}
		return nil, apperror.NewInternal(err)
	}

	return p, nil
}

// ListByCategory returns products belonging to a category code.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	if category == "" {
		return nil, apperror.NewValidation("category is required")
	}

	items, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	return items, nil
}
