package request

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
	"stockyard/pkg/logger"
	"stockyard/pkg/numerator"
)

// Service provides business logic for request documents.
type Service struct {
	repo      Repository
	txManager tx.Manager
	numerator numerator.Generator
}

// NewService creates a new request Service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		numerator: gen,
	}
}

// Create validates and persists a new request document, assigning its
// number when the caller left it blank.
func (s *Service) Create(ctx context.Context, r *Request) error {
	if r.Status == "" {
		r.Status = StatusCreated
	}

	if err := r.Validate(ctx); err != nil {
		return err
	}

	if uid := appctx.GetUserID(ctx); uid != "" {
		r.CreatedBy = uid
		r.UpdatedBy = uid
	}

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if r.Number == "" {
			prefix := "PR"
			if r.Kind == KindTransfer {
				prefix = "TR"
			}
			number, err := s.numerator.GetNextNumber(txCtx, numerator.DefaultConfig(prefix), nil, r.Date)
			if err != nil {
				return fmt.Errorf("generate number: %w", err)
			}
			r.Number = number
		}

		if err := s.repo.Create(txCtx, r); err != nil {
			return apperror.NewInternal(err)
		}

		logger.Info(txCtx, "request created",
			"id", r.ID.String(), "number", r.Number, "kind", string(r.Kind))
		return nil
	})
}

// GetByID returns a request document with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Request, error) {
	r, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("request", docID.String())
		}
		return nil, apperror.NewInternal(err)
	}
	return r, nil
}

// Update validates and persists document changes.
func (s *Service) Update(ctx context.Context, r *Request) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}

	if uid := appctx.GetUserID(ctx); uid != "" {
		r.UpdatedBy = uid
	}
	r.SetUpdatedAt(time.Now().UTC())

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		err := s.repo.Update(txCtx, r)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("request", r.ID.String())
			}
			if apperror.IsConcurrentModification(err) {
				return err
			}
			return apperror.NewInternal(err)
		}
		return nil
	})
}

// SetStatus moves the document to any known status. There is no
// transition table: any known value may follow any other.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, status string) error {
	if !IsKnownStatus(status) {
		return apperror.NewValidation("unknown request status").
			WithDetail("value", status)
	}

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		err := s.repo.UpdateStatus(txCtx, docID, status, appctx.GetUserID(txCtx))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("request", docID.String())
			}
			return apperror.NewInternal(err)
		}

		logger.Info(txCtx, "request status changed",
			"id", docID.String(), "status", status)
		return nil
	})
}

// Assign sets the responsible user and moves the request to assigned.
func (s *Service) Assign(ctx context.Context, docID id.ID, assigneeID string) error {
	if assigneeID == "" {
		return apperror.NewValidation("assigneeId is required").
			WithDetail("field", "assigneeId")
	}

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := s.repo.GetByID(txCtx, docID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("request", docID.String())
			}
			return apperror.NewInternal(err)
		}

		r.AssigneeID = &assigneeID
		r.Status = StatusAssigned
		if uid := appctx.GetUserID(txCtx); uid != "" {
			r.UpdatedBy = uid
		}
		r.SetUpdatedAt(time.Now().UTC())

		if err := s.repo.Update(txCtx, r); err != nil {
			return apperror.NewInternal(err)
		}
		return nil
	})
}

// List returns request documents matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Request, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.NewInternal(err)
	}
	return items, total, nil
}

// Delete soft-deletes a request document.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.SetDeletionMark(txCtx, docID, true); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFound("request", docID.String())
			}
			return apperror.NewInternal(err)
		}
		return nil
	})
}
