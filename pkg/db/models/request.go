package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub-backend/pkg/enums"
)

// Request is a procurement request moving through the manager/admin lifecycle.
// Staff, Manager, and Admin are three independent references to the users
// table; Manager and Admin stay null until the matching transition runs.
// TotalEstimatedCost is a creation-time snapshot and is never recomputed from
// current catalog prices.
type Request struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StaffID            uuid.UUID           `gorm:"column:staff_id;type:uuid;not null"`
	Title              string              `gorm:"column:title;not null"`
	Justification      *string             `gorm:"column:justification"`
	Status             enums.RequestStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	ManagerID          *uuid.UUID          `gorm:"column:manager_id;type:uuid"`
	ManagerNotes       *string             `gorm:"column:manager_notes"`
	AdminID            *uuid.UUID          `gorm:"column:admin_id;type:uuid"`
	AdminNotes         *string             `gorm:"column:admin_notes"`
	TotalEstimatedCost *decimal.Decimal    `gorm:"column:total_estimated_cost;type:numeric(12,2)"`
	ActualCost         *decimal.Decimal    `gorm:"column:actual_cost;type:numeric(12,2)"`
	PurchaseDate       *time.Time          `gorm:"column:purchase_date"`
	ReceivedDate       *time.Time          `gorm:"column:received_date"`
	Staff              *User               `gorm:"foreignKey:StaffID"`
	Manager            *User               `gorm:"foreignKey:ManagerID"`
	Admin              *User               `gorm:"foreignKey:AdminID"`
	Items              []RequestItem       `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
