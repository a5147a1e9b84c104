package category

import (
	"context"
	"strings"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
)

// Category is an equipment category in the two-level taxonomy.
// Root categories group leaf categories; leaf categories carry the
// mandatory flag consumed by the completeness checker.
type Category struct {
	entity.Catalog

	// LabelShort is the abbreviated display label for compact lists
	LabelShort string `db:"label_short" json:"labelShort"`

	// Icon is the UI icon identifier (nullable)
	Icon *string `db:"icon" json:"icon,omitempty"`

	// Mandatory marks categories required for site completeness
	Mandatory bool `db:"mandatory" json:"mandatory"`

	// SortOrder controls display ordering within a parent
	SortOrder int `db:"sort_order" json:"sortOrder"`
}

// NewCategory creates a new Category with required fields.
func NewCategory(code, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(c.Code) == "" {
		return apperror.NewValidation("category code is required").
			WithDetail("field", "code")
	}

	return nil
}
