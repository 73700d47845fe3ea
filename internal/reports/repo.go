package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
	"github.com/procurehub/procurehub-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountByStatus(ctx context.Context) ([]statusCount, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SumSpentOnReceived(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Select("SUM(actual_cost)").
		Where("status = ? AND actual_cost IS NOT NULL", enums.RequestStatusReceived).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) ReceivedProcessingWindows(ctx context.Context) ([]processingWindow, error) {
	var rows []processingWindow
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Select("created_at, received_date").
		Where("status = ? AND received_date IS NOT NULL", enums.RequestStatusReceived).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CategoryRows(ctx context.Context) ([]categoryRow, error) {
	var rows []categoryRow
	err := r.db.WithContext(ctx).
		Table("request_items").
		Select("request_items.request_id, categories.id AS category_id, categories.name AS category_name, requests.actual_cost").
		Joins("JOIN items ON items.id = request_items.item_id").
		Joins("JOIN categories ON categories.id = items.category_id").
		Joins("JOIN requests ON requests.id = request_items.request_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) MonthlyRows(ctx context.Context, since time.Time) ([]monthlyRow, error) {
	var rows []monthlyRow
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Select("created_at, actual_cost").
		Where("created_at >= ?", since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
