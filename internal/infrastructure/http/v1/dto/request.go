package dto

import (
	"github.com/shopspring/decimal"

	"stockyard/internal/domain/documents/request"
)

// RequestLineDTO is one line of a purchase or transfer request.
type RequestLineDTO struct {
	LineID    int             `json:"lineId,omitempty"`
	ProductID string          `json:"productId" binding:"required,uuid"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateRequestRequest for creating purchase/transfer requests.
type CreateRequestRequest struct {
	Kind              string           `json:"kind" binding:"required,oneof=purchase transfer"`
	WarehouseID       string           `json:"warehouseId" binding:"required,uuid"`
	SourceWarehouseID *string          `json:"sourceWarehouseId" binding:"omitempty,uuid"`
	AssigneeID        *string          `json:"assigneeId" binding:"omitempty,uuid"`
	Comment           string           `json:"comment"`
	Lines             []RequestLineDTO `json:"lines"`
}

// ToModel builds a new domain request.
func (r *CreateRequestRequest) ToModel() *request.Request {
	doc := request.NewRequest(request.Kind(r.Kind), r.WarehouseID)
	doc.SourceWarehouseID = r.SourceWarehouseID
	doc.AssigneeID = r.AssigneeID
	doc.Comment = r.Comment
	doc.Lines = toRequestLines(r.Lines)
	return doc
}

// UpdateRequestRequest for updating requests.
type UpdateRequestRequest struct {
	WarehouseID       *string          `json:"warehouseId" binding:"omitempty,uuid"`
	SourceWarehouseID *string          `json:"sourceWarehouseId" binding:"omitempty,uuid"`
	AssigneeID        *string          `json:"assigneeId" binding:"omitempty,uuid"`
	Comment           *string          `json:"comment"`
	Lines             []RequestLineDTO `json:"lines"`
	Version           int              `json:"version" binding:"required,min=1"`
}

// Apply merges the update onto an existing request.
func (r *UpdateRequestRequest) Apply(doc *request.Request) {
	if r.WarehouseID != nil {
		doc.WarehouseID = *r.WarehouseID
	}
	if r.SourceWarehouseID != nil {
		doc.SourceWarehouseID = r.SourceWarehouseID
	}
	if r.AssigneeID != nil {
		doc.AssigneeID = r.AssigneeID
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Lines != nil {
		doc.Lines = toRequestLines(r.Lines)
	}
	doc.SetVersion(r.Version)
}

func toRequestLines(lines []RequestLineDTO) []request.Line {
	out := make([]request.Line, len(lines))
	for i, l := range lines {
		out[i] = request.Line{
			LineID:    i + 1,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return out
}

// AssignRequest assigns a request to a user.
type AssignRequest struct {
	AssigneeID string `json:"assigneeId" binding:"required,uuid"`
}

// RequestFilter narrows request listings.
type RequestFilter struct {
	Kind        string `form:"kind" binding:"omitempty,oneof=purchase transfer"`
	Status      string `form:"status"`
	WarehouseID string `form:"warehouseId" binding:"omitempty,uuid"`
	AssigneeID  string `form:"assigneeId" binding:"omitempty,uuid"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

// RequestResponse represents a request document in API responses.
type RequestResponse struct {
	DocumentResponse
	Kind              string           `json:"kind"`
	WarehouseID       string           `json:"warehouseId"`
	SourceWarehouseID *string          `json:"sourceWarehouseId,omitempty"`
	AssigneeID        *string          `json:"assigneeId,omitempty"`
	Lines             []RequestLineDTO `json:"lines"`
	TotalAmount       decimal.Decimal  `json:"totalAmount"`
}

// FromRequest creates response from a domain request.
func FromRequest(doc *request.Request) *RequestResponse {
	lines := make([]RequestLineDTO, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = RequestLineDTO{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	return &RequestResponse{
		DocumentResponse:  FromDocument(doc.Document),
		Kind:              string(doc.Kind),
		WarehouseID:       doc.WarehouseID,
		SourceWarehouseID: doc.SourceWarehouseID,
		AssigneeID:        doc.AssigneeID,
		Lines:             lines,
		TotalAmount:       doc.TotalAmount(),
	}
}

// FromRequests maps a list of requests.
func FromRequests(items []*request.Request) []*RequestResponse {
	out := make([]*RequestResponse, len(items))
	for i, doc := range items {
		out[i] = FromRequest(doc)
	}
	return out
}
