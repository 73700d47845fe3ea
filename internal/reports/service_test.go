package reports

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
)

// Snapshot aggregates over every row, so each test rebuilds the schema from
// scratch instead of sharing seeded data.
func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	for _, table := range []string{"request_items", "requests", "items", "categories", "users"} {
		require.NoError(t, db.Exec("DROP TABLE IF EXISTS "+table).Error)
	}

	statements := []string{
		`CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  role TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE items (
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
		`CREATE TABLE requests (
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
		`CREATE TABLE request_items (
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

type reportSeeder struct {
	t     *testing.T
	db    *gorm.DB
	staff uuid.UUID
}

func newReportSeeder(t *testing.T, db *gorm.DB) *reportSeeder {
	t.Helper()
	staff := &models.User{
		ID:       uuid.New(),
		Email:    fmt.Sprintf("%s@procurehub.dev", uuid.NewString()[:8]),
		Name:     "Report Staff",
		Role:     enums.UserRoleStaff,
		IsActive: true,
	}
	require.NoError(t, db.Create(staff).Error)
	return &reportSeeder{t: t, db: db, staff: staff.ID}
}

func (s *reportSeeder) category(name string) uuid.UUID {
	s.t.Helper()
	category := &models.Category{ID: uuid.New(), Name: name, IsActive: true}
	require.NoError(s.t, s.db.Create(category).Error)
	return category.ID
}

func (s *reportSeeder) item(categoryID uuid.UUID) uuid.UUID {
	s.t.Helper()
	item := &models.Item{
		ID:         uuid.New(),
		Name:       fmt.Sprintf("Item %s", uuid.NewString()[:8]),
		CategoryID: categoryID,
		Unit:       "each",
		IsActive:   true,
	}
	require.NoError(s.t, s.db.Create(item).Error)
	return item.ID
}

func (s *reportSeeder) request(status enums.RequestStatus, actualCost string, createdAt time.Time, itemIDs ...uuid.UUID) uuid.UUID {
	s.t.Helper()
	request := &models.Request{
		ID:        uuid.New(),
		StaffID:   s.staff,
		Title:     fmt.Sprintf("Request %s", uuid.NewString()[:8]),
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if actualCost != "" {
		cost := decimal.RequireFromString(actualCost)
		request.ActualCost = &cost
	}
	if status == enums.RequestStatusReceived {
		received := createdAt.Add(36 * time.Hour)
		request.ReceivedDate = &received
	}
	require.NoError(s.t, s.db.Create(request).Error)

	for _, itemID := range itemIDs {
		line := &models.RequestItem{
			ID:        uuid.New(),
			RequestID: request.ID,
			ItemID:    itemID,
			Quantity:  1,
		}
		require.NoError(s.t, s.db.Create(line).Error)
	}
	return request.ID
}

func newReportService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestSnapshotEmptyDataset(t *testing.T) {
	db := setupReportsTestDB(t)
	svc := newReportService(t, db)

	report, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.TotalRequests)
	assert.Zero(t, report.PendingRequests)
	assert.Zero(t, report.ApprovedRequests)
	assert.Zero(t, report.RejectedRequests)
	assert.Zero(t, report.CompletedRequests)
	assert.True(t, report.TotalSpent.IsZero())
	assert.Zero(t, report.AverageProcessingDays)
	assert.Empty(t, report.TopCategories)
	assert.Empty(t, report.MonthlyTrends)
}

func TestSnapshotStatusBucketsAndSpend(t *testing.T) {
	db := setupReportsTestDB(t)
	seeder := newReportSeeder(t, db)
	svc := newReportService(t, db)
	now := time.Now().UTC()

	seeder.request(enums.RequestStatusPending, "", now)
	seeder.request(enums.RequestStatusManagerApproved, "", now)
	seeder.request(enums.RequestStatusAdminProcessing, "", now)
	seeder.request(enums.RequestStatusPurchased, "500.00", now)
	seeder.request(enums.RequestStatusManagerRejected, "", now)
	seeder.request(enums.RequestStatusCancelled, "", now)
	seeder.request(enums.RequestStatusReceived, "120.50", now)
	seeder.request(enums.RequestStatusReceived, "", now)

	report, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(8), report.TotalRequests)
	assert.Equal(t, int64(1), report.PendingRequests)
	assert.Equal(t, int64(3), report.ApprovedRequests)
	assert.Equal(t, int64(2), report.RejectedRequests)
	assert.Equal(t, int64(2), report.CompletedRequests)
	// Only the received request with a cost counts toward spend.
	assert.True(t, report.TotalSpent.Equal(decimal.RequireFromString("120.50")),
		"expected 120.50, got %s", report.TotalSpent)
	// Both received requests carry a received_date 36h after creation.
	assert.InDelta(t, 1.5, report.AverageProcessingDays, 0.0001)
}

func TestSnapshotTopCategoriesOrdering(t *testing.T) {
	db := setupReportsTestDB(t)
	seeder := newReportSeeder(t, db)
	svc := newReportService(t, db)
	now := time.Now().UTC()

	electronics := seeder.category("Electronics")
	office := seeder.category("Office Supplies")
	laptop := seeder.item(electronics)
	monitor := seeder.item(electronics)
	paper := seeder.item(office)

	// Two Electronics requests totaling 3500; the first carries two Electronics
	// lines to prove distinct-request counting.
	seeder.request(enums.RequestStatusReceived, "2000.00", now, laptop, monitor)
	seeder.request(enums.RequestStatusReceived, "1500.00", now, laptop)
	seeder.request(enums.RequestStatusReceived, "100.00", now, paper)

	report, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, report.TopCategories, 2)

	top := report.TopCategories[0]
	assert.Equal(t, "Electronics", top.Name)
	assert.Equal(t, int64(2), top.RequestCount)
	assert.True(t, top.TotalSpent.Equal(decimal.RequireFromString("3500.00")),
		"expected 3500.00, got %s", top.TotalSpent)

	second := report.TopCategories[1]
	assert.Equal(t, "Office Supplies", second.Name)
	assert.Equal(t, int64(1), second.RequestCount)
	assert.True(t, second.TotalSpent.Equal(decimal.RequireFromString("100.00")))
}

func TestSnapshotTopCategoriesCapsAtFive(t *testing.T) {
	db := setupReportsTestDB(t)
	seeder := newReportSeeder(t, db)
	svc := newReportService(t, db)
	now := time.Now().UTC()

	for i := 0; i < 7; i++ {
		category := seeder.category(fmt.Sprintf("Category %d", i))
		item := seeder.item(category)
		seeder.request(enums.RequestStatusPending, "", now, item)
	}

	report, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.TopCategories, 5)
}

func TestSnapshotMonthlyTrends(t *testing.T) {
	db := setupReportsTestDB(t)
	seeder := newReportSeeder(t, db)
	svc := newReportService(t, db)
	now := time.Now().UTC()
	lastMonth := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	seeder.request(enums.RequestStatusReceived, "200.00", now)
	seeder.request(enums.RequestStatusPending, "", now)
	seeder.request(enums.RequestStatusReceived, "50.00", lastMonth)
	// Outside the trailing twelve months, must not appear.
	seeder.request(enums.RequestStatusPending, "", now.AddDate(-2, 0, 0))

	report, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, report.MonthlyTrends, 2)

	current := report.MonthlyTrends[0]
	assert.Equal(t, now.Format("2006-01"), current.Month)
	assert.Equal(t, int64(2), current.RequestCount)
	assert.True(t, current.TotalSpent.Equal(decimal.RequireFromString("200.00")))

	previous := report.MonthlyTrends[1]
	assert.Equal(t, lastMonth.Format("2006-01"), previous.Month)
	assert.Equal(t, int64(1), previous.RequestCount)
}
