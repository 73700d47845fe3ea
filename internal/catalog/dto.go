package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
)

// CategoryDTO is the transport shape for catalog categories.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemDTO is the transport shape for catalog items, including the category
// summary when it was preloaded.
type ItemDTO struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Description    *string          `json:"description,omitempty"`
	CategoryID     uuid.UUID        `json:"category_id"`
	Category       *CategoryDTO     `json:"category,omitempty"`
	Unit           string           `json:"unit"`
	EstimatedPrice *decimal.Decimal `json:"estimated_price"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CreateCategoryInput holds the payload to create a category.
type CreateCategoryInput struct {
	Name        string
	Description *string
}

// UpdateCategoryInput holds optional mutation values; nil leaves a field unchanged.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// CreateItemInput holds the payload to create a catalog item.
type CreateItemInput struct {
	Name           string
	Description    *string
	CategoryID     uuid.UUID
	Unit           string
	EstimatedPrice *decimal.Decimal
}

// UpdateItemInput holds optional mutation values for an item.
type UpdateItemInput struct {
	Name           *string
	Description    *string
	Unit           *string
	EstimatedPrice *decimal.Decimal
	IsActive       *bool
}

// ListItemsFilters narrows the item listing.
type ListItemsFilters struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
}

func CategoryFromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ItemFromModel(i *models.Item) *ItemDTO {
	if i == nil {
		return nil
	}
	return &ItemDTO{
		ID:             i.ID,
		Name:           i.Name,
		Description:    i.Description,
		CategoryID:     i.CategoryID,
		Category:       CategoryFromModel(i.Category),
		Unit:           i.Unit,
		EstimatedPrice: i.EstimatedPrice,
		IsActive:       i.IsActive,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
