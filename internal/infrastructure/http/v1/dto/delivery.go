package dto

import (
	"time"

	"stockyard/internal/domain/documents/delivery"
)

// DeliveryLineDTO is one line of a delivery document.
type DeliveryLineDTO struct {
	LineID    int    `json:"lineId,omitempty"`
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateDeliveryRequest for creating deliveries.
type CreateDeliveryRequest struct {
	WarehouseID string            `json:"warehouseId" binding:"required,uuid"`
	RequestID   *string           `json:"requestId" binding:"omitempty,uuid"`
	CourierID   *string           `json:"courierId" binding:"omitempty,uuid"`
	Comment     string            `json:"comment"`
	Lines       []DeliveryLineDTO `json:"lines"`
}

// ToModel builds a new domain delivery.
func (r *CreateDeliveryRequest) ToModel() *delivery.Delivery {
	doc := delivery.NewDelivery(r.WarehouseID)
	doc.RequestID = r.RequestID
	doc.CourierID = r.CourierID
	doc.Comment = r.Comment
	doc.Lines = toDeliveryLines(r.Lines)
	return doc
}

// UpdateDeliveryRequest for updating deliveries.
type UpdateDeliveryRequest struct {
	WarehouseID *string           `json:"warehouseId" binding:"omitempty,uuid"`
	CourierID   *string           `json:"courierId" binding:"omitempty,uuid"`
	Comment     *string           `json:"comment"`
	Lines       []DeliveryLineDTO `json:"lines"`
	Version     int               `json:"version" binding:"required,min=1"`
}

// Apply merges the update onto an existing delivery.
func (r *UpdateDeliveryRequest) Apply(doc *delivery.Delivery) {
	if r.WarehouseID != nil {
		doc.WarehouseID = *r.WarehouseID
	}
	if r.CourierID != nil {
		doc.CourierID = r.CourierID
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Lines != nil {
		doc.Lines = toDeliveryLines(r.Lines)
	}
	doc.SetVersion(r.Version)
}

func toDeliveryLines(lines []DeliveryLineDTO) []delivery.Line {
	out := make([]delivery.Line, len(lines))
	for i, l := range lines {
		out[i] = delivery.Line{
			LineID:    i + 1,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		}
	}
	return out
}

// DeliveryFilter narrows delivery listings.
type DeliveryFilter struct {
	Status      string `form:"status"`
	WarehouseID string `form:"warehouseId" binding:"omitempty,uuid"`
	CourierID   string `form:"courierId" binding:"omitempty,uuid"`
	RequestID   string `form:"requestId" binding:"omitempty,uuid"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

// DeliveryResponse represents a delivery document in API responses.
type DeliveryResponse struct {
	DocumentResponse
	WarehouseID string            `json:"warehouseId"`
	RequestID   *string           `json:"requestId,omitempty"`
	CourierID   *string           `json:"courierId,omitempty"`
	DeliveredAt *time.Time        `json:"deliveredAt,omitempty"`
	Lines       []DeliveryLineDTO `json:"lines"`
}

// FromDelivery creates response from a domain delivery.
func FromDelivery(doc *delivery.Delivery) *DeliveryResponse {
	lines := make([]DeliveryLineDTO, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = DeliveryLineDTO{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		}
	}

	return &DeliveryResponse{
		DocumentResponse: FromDocument(doc.Document),
		WarehouseID:      doc.WarehouseID,
		RequestID:        doc.RequestID,
		CourierID:        doc.CourierID,
		DeliveredAt:      doc.DeliveredAt,
		Lines:            lines,
	}
}

// FromDeliveries maps a list of deliveries.
func FromDeliveries(items []*delivery.Delivery) []*DeliveryResponse {
	out := make([]*DeliveryResponse, len(items))
	for i, doc := range items {
		out[i] = FromDelivery(doc)
	}
	return out
}
