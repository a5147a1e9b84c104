package delivery

import (
	"context"
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
)

// Delivery statuses. Plain enum values with no transition table.
const (
	StatusCreated   = "created"
	StatusInTransit = "in_transit"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var knownStatuses = map[string]struct{}{
	StatusCreated:   {},
	StatusInTransit: {},
	StatusDelivered: {},
	StatusCancelled: {},
}

// IsKnownStatus reports whether s is one of the defined status values.
func IsKnownStatus(s string) bool {
	_, ok := knownStatuses[s]
	return ok
}

// Line is one delivered position.
type Line struct {
	LineID    int    `db:"line_id" json:"lineId"`
	ProductID string `db:"product_id" json:"productId"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// Delivery is a shipment document moving goods to a warehouse. A
// delivery may reference the request it fulfils.
type Delivery struct {
	entity.Document

	// RequestID links to the originating request document (nullable)
	RequestID *string `db:"request_id" json:"requestId,omitempty"`

	// WarehouseID is the destination warehouse
	WarehouseID string `db:"warehouse_id" json:"warehouseId"`

	// CourierID is the user performing the delivery (nullable)
	CourierID *string `db:"courier_id" json:"courierId,omitempty"`

	// DeliveredAt is set when the delivery reaches delivered status
	DeliveredAt *time.Time `db:"delivered_at" json:"deliveredAt,omitempty"`

	Lines []Line `db:"-" json:"lines"`
}

// NewDelivery creates a delivery in the initial status.
func NewDelivery(warehouseID string) *Delivery {
	return &Delivery{
		Document:    entity.NewDocument(StatusCreated),
		WarehouseID: warehouseID,
	}
}

// Validate implements entity.Validatable interface.
func (d *Delivery) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if !IsKnownStatus(d.Status) {
		return apperror.NewValidation("unknown delivery status").
			WithDetail("value", d.Status)
	}

	if d.WarehouseID == "" {
		return apperror.NewValidation("warehouseId is required").
			WithDetail("field", "warehouseId")
	}

	for i, line := range d.Lines {
		if line.ProductID == "" {
			return apperror.NewValidation("line product is required").
				WithDetail("line", i)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("line quantity must be positive").
				WithDetail("line", i)
		}
	}

	return nil
}

// MarkDelivered stamps the delivery time and status.
func (d *Delivery) MarkDelivered(at time.Time) {
	d.Status = StatusDelivered
	t := at.UTC()
	d.DeliveredAt = &t
}
