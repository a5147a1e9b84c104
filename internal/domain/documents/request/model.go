package request

import (
	"context"

	"github.com/shopspring/decimal"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/types"
)

// Kind distinguishes what the request asks for.
type Kind string

const (
	// KindPurchase requests goods to be bought from a supplier
	KindPurchase Kind = "purchase"
	// KindTransfer requests goods to be moved between warehouses
	KindTransfer Kind = "transfer"
)

// Request statuses. Plain enum values: any known status may follow any
// other; the workflow carries no transition table.
const (
	StatusCreated    = "created"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// knownStatuses guards against typos, not against ordering.
var knownStatuses = map[string]struct{}{
	StatusCreated:    {},
	StatusAssigned:   {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// IsKnownStatus reports whether s is one of the defined status values.
func IsKnownStatus(s string) bool {
	_, ok := knownStatuses[s]
	return ok
}

// Line is one requested position.
type Line struct {
	LineID    int         `db:"line_id" json:"lineId"`
	ProductID string      `db:"product_id" json:"productId"`
	Quantity  int         `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
}

// Total returns the line amount.
func (l Line) Total() types.Money {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Request is a purchase or transfer request document.
type Request struct {
	entity.Document

	Kind Kind `db:"kind" json:"kind"`

	// WarehouseID is the destination warehouse
	WarehouseID string `db:"warehouse_id" json:"warehouseId"`

	// SourceWarehouseID is set only for transfer requests
	SourceWarehouseID *string `db:"source_warehouse_id" json:"sourceWarehouseId,omitempty"`

	// AssigneeID is the user responsible for fulfilment (nullable)
	AssigneeID *string `db:"assignee_id" json:"assigneeId,omitempty"`

	// Lines are stored in a child table, not as a document column
	Lines []Line `db:"-" json:"lines"`
}

// NewRequest creates a request in the initial status.
func NewRequest(kind Kind, warehouseID string) *Request {
	return &Request{
		Document:    entity.NewDocument(StatusCreated),
		Kind:        kind,
		WarehouseID: warehouseID,
	}
}

// Validate implements entity.Validatable interface.
func (r *Request) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if r.Kind != KindPurchase && r.Kind != KindTransfer {
		return apperror.NewValidation("invalid request kind").
			WithDetail("value", string(r.Kind))
	}

	if !IsKnownStatus(r.Status) {
		return apperror.NewValidation("unknown request status").
			WithDetail("value", r.Status)
	}

	if r.WarehouseID == "" {
		return apperror.NewValidation("warehouseId is required").
			WithDetail("field", "warehouseId")
	}

	if r.Kind == KindTransfer && (r.SourceWarehouseID == nil || *r.SourceWarehouseID == "") {
		return apperror.NewValidation("transfer request needs a source warehouse").
			WithDetail("field", "sourceWarehouseId")
	}

	for i, line := range r.Lines {
		if line.ProductID == "" {
			return apperror.NewValidation("line product is required").
				WithDetail("line", i)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("line quantity must be positive").
				WithDetail("line", i)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("line price cannot be negative").
				WithDetail("line", i)
		}
	}

	return nil
}

// TotalAmount sums all line totals.
func (r *Request) TotalAmount() types.Money {
	total := types.ZeroMoney()
	for _, line := range r.Lines {
		total = total.Add(line.Total())
	}
	return total
}
