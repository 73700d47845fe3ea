package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestItem is one line of a request. EstimatedUnitCost snapshots the item
// price at request creation; ActualUnitCost exists in the schema but no
// operation currently writes it — admin processing records cost only at the
// request level.
type RequestItem struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RequestID         uuid.UUID        `gorm:"column:request_id;type:uuid;not null"`
	ItemID            uuid.UUID        `gorm:"column:item_id;type:uuid;not null"`
	Quantity          int              `gorm:"column:quantity;not null"`
	EstimatedUnitCost *decimal.Decimal `gorm:"column:estimated_unit_cost;type:numeric(12,2)"`
	ActualUnitCost    *decimal.Decimal `gorm:"column:actual_unit_cost;type:numeric(12,2)"`
	Notes             *string          `gorm:"column:notes"`
	Item              *Item            `gorm:"foreignKey:ItemID"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
}
