package dto

import "stockyard/internal/domain/equipment"

// MissingCategoryResponse is one gap in a completeness report. The
// reference table code is published under the "category" key.
type MissingCategoryResponse struct {
	Category   string `json:"category"`
	Label      string `json:"label"`
	LabelShort string `json:"labelShort"`
	Icon       string `json:"icon,omitempty"`
	MinCount   int    `json:"minCount,omitempty"`
}

// CompletenessResponse maps equipment.CompletenessReport for the API.
type CompletenessResponse struct {
	WarehouseID string                    `json:"warehouseId"`
	Complete    bool                      `json:"complete"`
	Missing     []MissingCategoryResponse `json:"missing"`
	Groups      []equipment.CategoryGroup `json:"groups"`
}

// FromCategoryConfig converts a reference table row.
func FromCategoryConfig(cfg equipment.CategoryConfig) MissingCategoryResponse {
	return MissingCategoryResponse{
		Category:   cfg.Code,
		Label:      cfg.Label,
		LabelShort: cfg.LabelShort,
		Icon:       cfg.Icon,
		MinCount:   cfg.MinCount,
	}
}

// FromCompletenessReport converts a report to its response shape.
func FromCompletenessReport(report *equipment.CompletenessReport) CompletenessResponse {
	missing := make([]MissingCategoryResponse, len(report.Missing))
	for i, cfg := range report.Missing {
		missing[i] = FromCategoryConfig(cfg)
	}

	return CompletenessResponse{
		WarehouseID: report.WarehouseID,
		Complete:    report.Complete,
		Missing:     missing,
		Groups:      report.Groups,
	}
}
