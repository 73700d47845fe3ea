package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
)

// Repository defines persistence operations for categories and items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error

	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	FindItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	FindActiveItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Item, error)
	ListItems(ctx context.Context, filters ListItemsFilters) ([]models.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// Service exposes catalog management operations.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	DeactivateCategory(ctx context.Context, categoryID uuid.UUID) error
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryDTO, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]CategoryDTO, error)

	CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeactivateItem(ctx context.Context, itemID uuid.UUID) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error)
	ListItems(ctx context.Context, filters ListItemsFilters) ([]ItemDTO, error)

	FindActiveItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Item, error)
}
