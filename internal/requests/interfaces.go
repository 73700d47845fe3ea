package requests

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
	"github.com/procurehub/procurehub-backend/pkg/enums"
	"github.com/procurehub/procurehub-backend/pkg/pagination"
)

// Repository defines persistence operations for requests and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.Request) (*models.Request, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Request, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Request, error)
	List(ctx context.Context, filters RequestFilters, params pagination.Params) ([]models.Request, string, error)
	ListPending(ctx context.Context) ([]models.Request, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]models.Request, error)
	// UpdateStatus applies updates only while the request still holds the
	// expected status, returning the number of rows changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected enums.RequestStatus, updates map[string]any) (int64, error)
}

// Service exposes the request lifecycle and query operations.
type Service interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*RequestDetail, error)
	ManagerDecision(ctx context.Context, input ManagerDecisionInput) (*RequestDetail, error)
	AdminProcess(ctx context.Context, input AdminProcessInput) (*RequestDetail, error)
	GetRequest(ctx context.Context, requestID uuid.UUID) (*RequestDetail, error)
	ListRequests(ctx context.Context, filters RequestFilters, params pagination.Params) (*RequestList, error)
	ListPendingRequests(ctx context.Context) ([]RequestDetail, error)
	ListStaffRequests(ctx context.Context, staffID uuid.UUID) ([]RequestDetail, error)
}

// UserDirectory is the slice of the directory service the lifecycle needs.
type UserDirectory interface {
	FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	FindActiveUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// ItemCatalog resolves the active catalog items referenced by a new request.
type ItemCatalog interface {
	FindActiveItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Item, error)
}
