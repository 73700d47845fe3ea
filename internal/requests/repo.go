package requests

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
	"github.com/procurehub/procurehub-backend/pkg/enums"
	"github.com/procurehub/procurehub-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a requests repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.Request) (*models.Request, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	var request models.Request
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	var request models.Request
	err := r.detailQuery(ctx).First(&request, "requests.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) List(ctx context.Context, filters RequestFilters, params pagination.Params) ([]models.Request, string, error) {
	query := r.detailQuery(ctx)

	if filters.Status != nil {
		query = query.Where("requests.status = ?", *filters.Status)
	}
	if filters.StaffID != nil {
		query = query.Where("requests.staff_id = ?", *filters.StaffID)
	}
	if filters.ManagerID != nil {
		query = query.Where("requests.manager_id = ?", *filters.ManagerID)
	}
	if filters.DateFrom != nil {
		query = query.Where("requests.created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("requests.created_at <= ?", *filters.DateTo)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"requests.created_at < ? OR (requests.created_at = ? AND requests.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var rows []models.Request
	err = query.
		Order("requests.created_at DESC").
		Order("requests.id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

func (r *repository) ListPending(ctx context.Context) ([]models.Request, error) {
	var rows []models.Request
	err := r.detailQuery(ctx).
		Where("requests.status = ?", enums.RequestStatusPending).
		Order("requests.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]models.Request, error) {
	var rows []models.Request
	err := r.detailQuery(ctx).
		Where("requests.staff_id = ?", staffID).
		Order("requests.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, expected enums.RequestStatus, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Request{}).
		Preload("Staff").
		Preload("Manager").
		Preload("Admin").
		Preload("Items").
		Preload("Items.Item").
		Preload("Items.Item.Category")
}
