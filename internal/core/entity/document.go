package entity

import (
	"context"
	"time"

	"stockyard/internal/core/apperror"
)

// Document is the base type for workflow records.
// Examples: PurchaseRequest, TransferRequest, Delivery.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+period)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Status is the workflow state. Statuses are plain enum values: any known
	// status may follow any other, there is no transition table.
	Status string `db:"status" json:"status"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument(status string) Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		Status:       status,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if d.Status == "" {
		return apperror.NewValidation("status is required").
			WithDetail("field", "status")
	}

	return nil
}
