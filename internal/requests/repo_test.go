package requests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
	"github.com/procurehub/procurehub-backend/pkg/enums"
	"github.com/procurehub/procurehub-backend/pkg/pagination"
)

func setupRequestsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  role TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category_id TEXT NOT NULL,
  unit TEXT NOT NULL,
  estimated_price NUMERIC,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS requests (
  id TEXT PRIMARY KEY,
  staff_id TEXT NOT NULL,
  title TEXT NOT NULL,
  justification TEXT,
  status TEXT NOT NULL,
  manager_id TEXT,
  manager_notes TEXT,
  admin_id TEXT,
  admin_notes TEXT,
  total_estimated_cost NUMERIC,
  actual_cost NUMERIC,
  purchase_date DATETIME,
  received_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS request_items (
  id TEXT PRIMARY KEY,
  request_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  estimated_unit_cost NUMERIC,
  actual_unit_cost NUMERIC,
  notes TEXT,
  created_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role enums.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Email:    fmt.Sprintf("%s@procurehub.dev", uuid.NewString()[:8]),
		Name:     "Seed User",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedItem(t *testing.T, db *gorm.DB) *models.Item {
	t.Helper()
	category := &models.Category{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Category %s", uuid.NewString()[:8]),
		IsActive: true,
	}
	require.NoError(t, db.Create(category).Error)

	price := decimal.RequireFromString("42.50")
	item := &models.Item{
		ID:             uuid.New(),
		Name:           fmt.Sprintf("Item %s", uuid.NewString()[:8]),
		CategoryID:     category.ID,
		Unit:           "box",
		EstimatedPrice: &price,
		IsActive:       true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func seedRequest(t *testing.T, db *gorm.DB, staffID uuid.UUID, status enums.RequestStatus, createdAt time.Time) *models.Request {
	t.Helper()
	request := &models.Request{
		ID:        uuid.New(),
		StaffID:   staffID,
		Title:     fmt.Sprintf("Request %s", uuid.NewString()[:8]),
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func TestRepositoryCreatePersistsLines(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	staff := seedUser(t, db, enums.UserRoleStaff)
	item := seedItem(t, db)

	total := decimal.RequireFromString("85.00")
	request := &models.Request{
		ID:                 uuid.New(),
		StaffID:            staff.ID,
		Title:              "Boxes",
		Status:             enums.RequestStatusPending,
		TotalEstimatedCost: &total,
		Items: []models.RequestItem{
			{ID: uuid.New(), ItemID: item.ID, Quantity: 2, EstimatedUnitCost: item.EstimatedPrice},
		},
	}
	_, err := repo.Create(ctx, request)
	require.NoError(t, err)

	detail, err := repo.FindDetail(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, item.ID, detail.Items[0].ItemID)
	require.NotNil(t, detail.Items[0].Item)
	assert.Equal(t, item.Name, detail.Items[0].Item.Name)
	require.NotNil(t, detail.Items[0].Item.Category)
	require.NotNil(t, detail.Staff)
	assert.Equal(t, staff.Email, detail.Staff.Email)
}

func TestRepositoryUpdateStatusIsConditional(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	staff := seedUser(t, db, enums.UserRoleStaff)
	manager := seedUser(t, db, enums.UserRoleManager)
	request := seedRequest(t, db, staff.ID, enums.RequestStatusPending, time.Now().UTC())

	rows, err := repo.UpdateStatus(ctx, request.ID, enums.RequestStatusPending, map[string]any{
		"status":     enums.RequestStatusManagerApproved,
		"manager_id": manager.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// Second writer racing from the same expected status loses.
	rows, err = repo.UpdateStatus(ctx, request.ID, enums.RequestStatusPending, map[string]any{
		"status": enums.RequestStatusManagerRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	reloaded, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.RequestStatusManagerApproved, reloaded.Status)
	require.NotNil(t, reloaded.ManagerID)
	assert.Equal(t, manager.ID, *reloaded.ManagerID)
}

func TestRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	staff := seedUser(t, db, enums.UserRoleStaff)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var seeded []*models.Request
	for i := 0; i < 3; i++ {
		seeded = append(seeded, seedRequest(t, db, staff.ID, enums.RequestStatusPending, base.Add(time.Duration(i)*time.Hour)))
	}

	staffID := staff.ID
	page1, next, err := repo.List(ctx, RequestFilters{StaffID: &staffID}, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotEmpty(t, next)
	assert.Equal(t, seeded[2].ID, page1[0].ID)
	assert.Equal(t, seeded[1].ID, page1[1].ID)

	page2, next2, err := repo.List(ctx, RequestFilters{StaffID: &staffID}, pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Empty(t, next2)
	assert.Equal(t, seeded[0].ID, page2[0].ID)

	// Inclusive date range keeps the boundary rows.
	from := base
	to := base.Add(time.Hour)
	ranged, _, err := repo.List(ctx, RequestFilters{StaffID: &staffID, DateFrom: &from, DateTo: &to}, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)
}

func TestRepositoryListByStaffAndPending(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	staff := seedUser(t, db, enums.UserRoleStaff)
	other := seedUser(t, db, enums.UserRoleStaff)
	now := time.Now().UTC()

	mine := seedRequest(t, db, staff.ID, enums.RequestStatusPending, now)
	seedRequest(t, db, staff.ID, enums.RequestStatusManagerRejected, now.Add(-time.Minute))
	seedRequest(t, db, other.ID, enums.RequestStatusPending, now)

	byStaff, err := repo.ListByStaff(ctx, staff.ID)
	require.NoError(t, err)
	assert.Len(t, byStaff, 2)

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	ids := make(map[uuid.UUID]bool, len(pending))
	for _, r := range pending {
		require.Equal(t, enums.RequestStatusPending, r.Status)
		ids[r.ID] = true
	}
	assert.True(t, ids[mine.ID])
}
