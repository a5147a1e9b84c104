package delivery

import (
	"context"

	"stockyard/internal/core/id"
)

// ListFilter narrows delivery document queries.
type ListFilter struct {
	Status      *string
	WarehouseID *string
	CourierID   *string
	RequestID   *string
	Limit       int
	Offset      int
}

// Repository defines data access for delivery documents and their lines.
type Repository interface {
	Create(ctx context.Context, d *Delivery) error

	// GetByID returns a document with lines loaded.
	// Returns pgx.ErrNoRows when not found.
	GetByID(ctx context.Context, docID id.ID) (*Delivery, error)

	// Update persists document fields and replaces lines.
	Update(ctx context.Context, d *Delivery) error

	// UpdateStatus writes status, delivered_at and audit columns.
	UpdateStatus(ctx context.Context, d *Delivery, updatedBy string) error

	List(ctx context.Context, filter ListFilter) ([]*Delivery, int, error)

	SetDeletionMark(ctx context.Context, docID id.ID, marked bool) error
}
