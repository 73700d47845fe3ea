package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procurehub/procurehub-backend/pkg/db"
	"github.com/procurehub/procurehub-backend/pkg/db/models"
	pkgerrors "github.com/procurehub/procurehub-backend/pkg/errors"
)

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "categories_name_key") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "category %s already exists", input.Name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return CategoryFromModel(created), nil
}

func (s *service) UpdateCategory(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	if categoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if _, err := s.loadCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateCategory(ctx, categoryID, updates); err != nil {
			if db.IsUniqueViolation(err, "categories_name_key") {
				return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "category %s already exists", *input.Name)
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
		}
	}
	return s.GetCategory(ctx, categoryID)
}

func (s *service) DeactivateCategory(ctx context.Context, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if _, err := s.loadCategory(ctx, categoryID); err != nil {
		return err
	}
	if err := s.repo.UpdateCategory(ctx, categoryID, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate category")
	}
	return nil
}

func (s *service) GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryDTO, error) {
	category, err := s.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return CategoryFromModel(category), nil
}

func (s *service) ListCategories(ctx context.Context, activeOnly bool) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, *CategoryFromModel(&categories[i]))
	}
	return dtos, nil
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name required")
	}
	if strings.TrimSpace(input.Unit) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item unit required")
	}
	if input.EstimatedPrice != nil && input.EstimatedPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated_price cannot be negative")
	}

	category, err := s.loadCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "category %s is not active", category.ID)
	}

	item := &models.Item{
		Name:           input.Name,
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		Unit:           input.Unit,
		EstimatedPrice: input.EstimatedPrice,
		IsActive:       true,
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	created.Category = category
	return ItemFromModel(created), nil
}

func (s *service) UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Unit != nil {
		if strings.TrimSpace(*input.Unit) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item unit cannot be empty")
		}
		updates["unit"] = *input.Unit
	}
	if input.EstimatedPrice != nil {
		if input.EstimatedPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated_price cannot be negative")
		}
		updates["estimated_price"] = *input.EstimatedPrice
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateItem(ctx, itemID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
		}
	}
	return s.GetItem(ctx, itemID)
}

func (s *service) DeactivateItem(ctx context.Context, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return err
	}
	if err := s.repo.UpdateItem(ctx, itemID, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate item")
	}
	return nil
}

func (s *service) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemDTO, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return ItemFromModel(item), nil
}

func (s *service) ListItems(ctx context.Context, filters ListItemsFilters) ([]ItemDTO, error) {
	items, err := s.repo.ListItems(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *ItemFromModel(&items[i]))
	}
	return dtos, nil
}

// FindActiveItemsByIDs resolves the distinct active items matching ids. The
// request lifecycle compares the result count against the distinct id count.
func (s *service) FindActiveItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Item, error) {
	items, err := s.repo.FindActiveItemsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load items")
	}
	return items, nil
}

func (s *service) loadCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "category %s not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func (s *service) loadItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.FindItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "item %s not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}
