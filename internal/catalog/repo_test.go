package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category_id TEXT NOT NULL,
  unit TEXT NOT NULL,
  estimated_price NUMERIC,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(items).Error)
	return db
}

func newCategory(t *testing.T, db *gorm.DB, active bool) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Category %s", uuid.NewString()[:8]),
		IsActive: active,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func newItem(t *testing.T, db *gorm.DB, categoryID uuid.UUID, active bool, price *decimal.Decimal) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:             uuid.New(),
		Name:           fmt.Sprintf("Item %s", uuid.NewString()[:8]),
		CategoryID:     categoryID,
		Unit:           "piece",
		EstimatedPrice: price,
		IsActive:       active,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestRepositoryFindActiveItemsByIDs(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	category := newCategory(t, db, true)
	price := decimal.NewFromFloat(84.90)
	active := newItem(t, db, category.ID, true, &price)
	inactive := newItem(t, db, category.ID, false, nil)

	items, err := repo.FindActiveItemsByIDs(context.Background(), []uuid.UUID{active.ID, inactive.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, active.ID, items[0].ID)
	require.NotNil(t, items[0].EstimatedPrice)
	assert.True(t, items[0].EstimatedPrice.Equal(decimal.NewFromFloat(84.90)))
}

func TestRepositoryFindItemPreloadsCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	category := newCategory(t, db, true)
	item := newItem(t, db, category.ID, true, nil)

	found, err := repo.FindItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Category)
	assert.Equal(t, category.Name, found.Category.Name)
	assert.Nil(t, found.EstimatedPrice)
}

func TestRepositoryListItemsByCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	categoryA := newCategory(t, db, true)
	categoryB := newCategory(t, db, true)
	inA := newItem(t, db, categoryA.ID, true, nil)
	newItem(t, db, categoryB.ID, true, nil)

	listed, err := repo.ListItems(context.Background(), ListItemsFilters{CategoryID: &categoryA.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, inA.ID, listed[0].ID)
}
