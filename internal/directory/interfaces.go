package directory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
)

// Repository defines persistence operations for the user directory.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters ListUsersFilters) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// Service exposes user directory operations.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	DeactivateUser(ctx context.Context, userID uuid.UUID) error
	GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	ListUsers(ctx context.Context, filters ListUsersFilters) ([]UserDTO, error)
	FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	FindActiveUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}
