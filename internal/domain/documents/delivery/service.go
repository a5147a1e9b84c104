package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"stockyard/internal/core/apperror"
	appctx "stockyard/internal/core/context"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain/stock"
	"stockyard/pkg/logger"
	"stockyard/pkg/numerator"
)

// Service provides business logic for delivery documents. Marking a
// delivery as delivered feeds its lines into the receiving reconciler.
type Service struct {
	repo      Repository
	stock     *stock.Service
	txManager tx.Manager
	numerator numerator.Generator
}

// NewService creates a new delivery Service.
func NewService(repo Repository, stockSvc *stock.Service, txManager tx.Manager, gen numerator.Generator) *Service {
	return &Service{
		repo:      repo,
		stock:     stockSvc,
		txManager: txManager,
		numerator: gen,
	}
}

// Create validates and persists a new delivery document.
func (s *Service) Create(ctx context.Context, d *Delivery) error {
	if d.Status == "" {
		d.Status = StatusCreated
	}

	if err := d.Validate(ctx); err != nil {
		return err
	}

	if uid := appctx.GetUserID(ctx); uid != "" {
		d.CreatedBy = uid
		d.UpdatedBy = uid
	}

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if d.Number == "" {
			number, err := s.numerator.GetNextNumber(txCtx, numerator.DefaultConfig("DLV"), nil, d.Date)
			if err != nil {
				return fmt.Errorf("generate number: %w", err)
			}
			d.Number = number
		}

		if err := s.repo.Create(txCtx, d); err != nil {
			return apperror.NewInternal(err)
		}

		logger.Info(txCtx, "delivery created",
			"id", d.ID.String(), "number", d.Number)
		return nil
	})
}

// GetByID returns a delivery document with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Delivery, error) {
	d, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("delivery", docID.String())
		}
		return nil, apperror.NewInternal(err)
	}
	return d, nil
}

// Update validates and persists document changes.
func (s *Service) Update(ctx context.Context, d *Delivery) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}

	if uid := appctx.GetUserID(ctx); uid != "" {
		d.UpdatedBy = uid
	}
	d.SetUpdatedAt(time.Now().UTC())

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		err := s.repo.Update(txCtx, d)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("delivery", d.ID.String())
			}
			if apperror.IsConcurrentModification(err) {
				return err
			}
			return apperror.NewInternal(err)
		}
		return nil
	})
}

// SetStatus moves the document to any known status. Reaching delivered
// stamps the delivery time and applies the lines to the stock ledger as
// a receiving batch, all within one transaction.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, status string) error {
	if !IsKnownStatus(status) {
		return apperror.NewValidation("unknown delivery status").
			WithDetail("value", status)
	}

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		d, err := s.repo.GetByID(txCtx, docID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("delivery", docID.String())
			}
			return apperror.NewInternal(err)
		}

		alreadyDelivered := d.Status == StatusDelivered

		d.Status = status
		if status == StatusDelivered && !alreadyDelivered {
			d.MarkDelivered(time.Now())
		}

		if err := s.repo.UpdateStatus(txCtx, d, appctx.GetUserID(txCtx)); err != nil {
			return apperror.NewInternal(err)
		}

		// Receiving is additive: only the first arrival at delivered
		// feeds the ledger.
		if status == StatusDelivered && !alreadyDelivered && len(d.Lines) > 0 {
			items := make([]stock.ReceivingItem, len(d.Lines))
			for i, line := range d.Lines {
				pid := line.ProductID
				items[i] = stock.ReceivingItem{ProductID: &pid, Quantity: line.Quantity}
			}

			if _, err := s.stock.ApplyReceiving(txCtx, stock.ReceivingBatch{
				WarehouseID: d.WarehouseID,
				Items:       items,
			}); err != nil {
				return err
			}
		}

		logger.Info(txCtx, "delivery status changed",
			"id", docID.String(), "status", status)
		return nil
	})
}

// List returns delivery documents matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Delivery, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.NewInternal(err)
	}
	return items, total, nil
}

// Delete soft-deletes a delivery document.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.SetDeletionMark(txCtx, docID, true); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("delivery", docID.String())
			}
			return apperror.NewInternal(err)
		}
		return nil
	})
}
