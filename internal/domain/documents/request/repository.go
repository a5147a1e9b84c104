package request

import (
	"context"

	"stockyard/internal/core/id"
)

// ListFilter narrows request document queries.
type ListFilter struct {
	Kind        *Kind
	Status      *string
	WarehouseID *string
	AssigneeID  *string
	Limit       int
	Offset      int
}

// Repository defines data access for request documents and their lines.
type Repository interface {
	// Create inserts the document together with its lines.
	Create(ctx context.Context, r *Request) error

	// GetByID returns a document with lines loaded.
	// Returns pgx.ErrNoRows when not found.
	GetByID(ctx context.Context, docID id.ID) (*Request, error)

	// Update persists document fields and replaces lines.
	// Returns apperror.CodeConcurrentModification on version mismatch.
	Update(ctx context.Context, r *Request) error

	// UpdateStatus writes only the status and audit columns.
	UpdateStatus(ctx context.Context, docID id.ID, status, updatedBy string) error

	// List returns documents (without lines) plus a total count.
	List(ctx context.Context, filter ListFilter) ([]*Request, int, error)

	// SetDeletionMark toggles the soft-delete flag.
	SetDeletionMark(ctx context.Context, docID id.ID, marked bool) error
}
