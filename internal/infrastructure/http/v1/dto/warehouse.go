package dto

import (
	"stockyard/internal/domain/catalogs/warehouse"
)

// CreateWarehouseRequest for creating warehouses.
type CreateWarehouseRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=main store transit"`
	Address     *string `json:"address"`
	IsDefault   bool    `json:"isDefault"`
	Description *string `json:"description"`
}

// ToModel builds a new domain warehouse.
func (r *CreateWarehouseRequest) ToModel() *warehouse.Warehouse {
	wh := warehouse.NewWarehouse(r.Code, r.Name, warehouse.WarehouseType(r.Type))
	wh.Address = r.Address
	wh.IsDefault = r.IsDefault
	wh.Description = r.Description
	return wh
}

// UpdateWarehouseRequest for updating warehouses.
type UpdateWarehouseRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type" binding:"omitempty,oneof=main store transit"`
	Address     *string `json:"address"`
	IsActive    *bool   `json:"isActive"`
	IsDefault   *bool   `json:"isDefault"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// Apply merges the update onto an existing warehouse.
func (r *UpdateWarehouseRequest) Apply(wh *warehouse.Warehouse) {
	if r.Name != nil {
		wh.Name = *r.Name
	}
	if r.Type != nil {
		wh.Type = warehouse.WarehouseType(*r.Type)
	}
	if r.Address != nil {
		wh.Address = r.Address
	}
	if r.IsActive != nil {
		wh.IsActive = *r.IsActive
	}
	if r.IsDefault != nil {
		wh.IsDefault = *r.IsDefault
	}
	if r.Description != nil {
		wh.Description = r.Description
	}
	wh.SetVersion(r.Version)
}

// WarehouseResponse represents a warehouse in API responses.
type WarehouseResponse struct {
	CatalogResponse
	Type        string  `json:"type"`
	Address     *string `json:"address,omitempty"`
	IsActive    bool    `json:"isActive"`
	IsDefault   bool    `json:"isDefault"`
	Description *string `json:"description,omitempty"`
}

// FromWarehouse creates response from domain warehouse.
func FromWarehouse(wh *warehouse.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		CatalogResponse: FromCatalog(wh.Catalog),
		Type:            string(wh.Type),
		Address:         wh.Address,
		IsActive:        wh.IsActive,
		IsDefault:       wh.IsDefault,
		Description:     wh.Description,
	}
}

// FromWarehouses maps a list of warehouses.
func FromWarehouses(items []*warehouse.Warehouse) []*WarehouseResponse {
	out := make([]*WarehouseResponse, len(items))
	for i, wh := range items {
		out[i] = FromWarehouse(wh)
	}
	return out
}
