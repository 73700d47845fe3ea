package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a catalog entry staff can request. EstimatedPrice is advisory and
// may be absent; when present it is non-negative with 2-decimal precision.
type Item struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string           `gorm:"column:name;not null"`
	Description    *string          `gorm:"column:description"`
	CategoryID     uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Unit           string           `gorm:"column:unit;not null"`
	EstimatedPrice *decimal.Decimal `gorm:"column:estimated_price;type:numeric(12,2)"`
	IsActive       bool             `gorm:"column:is_active;not null;default:true"`
	Category       *Category        `gorm:"foreignKey:CategoryID"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
