package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
	"github.com/procurehub/procurehub-backend/pkg/enums"
)

// UserDTO is the transport shape for directory users.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Role      enums.UserRole `json:"role"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateUserInput holds the data required to register a new user.
type CreateUserInput struct {
	Email string
	Name  string
	Role  enums.UserRole
}

// UpdateUserInput holds optional mutation values; nil leaves a field unchanged.
type UpdateUserInput struct {
	Name     *string
	Role     *enums.UserRole
	IsActive *bool
}

// ListUsersFilters narrows the directory listing.
type ListUsersFilters struct {
	Role       *enums.UserRole
	ActiveOnly bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c CreateUserInput) ToModel() *models.User {
	return &models.User{
		Email:    c.Email,
		Name:     c.Name,
		Role:     c.Role,
		IsActive: true,
	}
}
