package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/procurehub/procurehub-backend/pkg/enums"
)

// User is the canonical identity entity. A single user record can appear on a
// request as staff, manager, or admin; the role column gates which actions it
// may take. Users are deactivated, never deleted.
type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string         `gorm:"column:email;type:text;not null;uniqueIndex:users_email_key"`
	Name      string         `gorm:"column:name;not null"`
	Role      enums.UserRole `gorm:"column:role;type:text;not null"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
