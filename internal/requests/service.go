package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procurehub/procurehub-backend/pkg/db/models"
	"github.com/procurehub/procurehub-backend/pkg/enums"
	pkgerrors "github.com/procurehub/procurehub-backend/pkg/errors"
	"github.com/procurehub/procurehub-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo    Repository
	tx      txRunner
	users   UserDirectory
	catalog ItemCatalog
	now     func() time.Time
}

// NewService builds the request lifecycle service.
func NewService(repo Repository, tx txRunner, users UserDirectory, catalog ItemCatalog) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("requests repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if users == nil {
		return nil, fmt.Errorf("user directory required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("item catalog required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		users:   users,
		catalog: catalog,
		now:     time.Now,
	}, nil
}

// CreateRequest validates the payload, snapshots current item prices onto the
// line items, and persists the request plus its lines in one transaction.
func (s *service) CreateRequest(ctx context.Context, input CreateRequestInput) (*RequestDetail, error) {
	if input.StaffID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "staff id required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request must contain at least one item")
	}
	for _, line := range input.Items {
		if line.ItemID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required on every line")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	}

	staff, err := s.users.FindActiveUser(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeForbidden, "staff user %s is not active", input.StaffID)
	}

	distinct := distinctItemIDs(input.Items)
	items, err := s.catalog.FindActiveItemsByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	if len(items) != len(distinct) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "one or more requested items are not available")
	}

	prices := make(map[uuid.UUID]*decimal.Decimal, len(items))
	for i := range items {
		prices[items[i].ID] = items[i].EstimatedPrice
	}

	request := &models.Request{
		StaffID:            input.StaffID,
		Title:              input.Title,
		Justification:      input.Justification,
		Status:             enums.RequestStatusPending,
		TotalEstimatedCost: ComputeEstimatedTotal(input.Items, prices),
	}
	for _, line := range input.Items {
		request.Items = append(request.Items, models.RequestItem{
			ItemID:            line.ItemID,
			Quantity:          line.Quantity,
			EstimatedUnitCost: prices[line.ItemID],
			Notes:             line.Notes,
		})
	}

	var created *models.Request
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		persisted, createErr := repo.Create(ctx, request)
		if createErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create request")
		}
		created = persisted
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRequest(ctx, created.ID)
}

// ManagerDecision applies a manager's approve/reject to a pending request.
// Precondition order: unknown request, then non-pending status, then actor.
func (s *service) ManagerDecision(ctx context.Context, input ManagerDecisionInput) (*RequestDetail, error) {
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if input.ManagerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "manager id required")
	}
	target, err := nextManagerStatus(input.Action)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		request, loadErr := repo.FindByID(ctx, input.RequestID)
		if loadErr != nil {
			if errors.Is(loadErr, gorm.ErrRecordNotFound) {
				return pkgerrors.Newf(pkgerrors.CodeNotFound, "request %s not found", input.RequestID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, loadErr, "load request")
		}
		if request.Status != enums.RequestStatusPending {
			return pkgerrors.Newf(pkgerrors.CodeInvalidState, "cannot %s a request in status %s", input.Action, request.Status)
		}

		manager, actorErr := s.users.FindActiveUser(ctx, input.ManagerID)
		if actorErr != nil {
			return actorErr
		}
		if manager == nil || manager.Role != enums.UserRoleManager {
			return pkgerrors.Newf(pkgerrors.CodeForbidden, "user %s is not an active manager", input.ManagerID)
		}

		updates := map[string]any{
			"status":        target,
			"manager_id":    input.ManagerID,
			"manager_notes": input.Notes,
			"updated_at":    s.now().UTC(),
		}
		return s.applyTransition(ctx, repo, input.RequestID, enums.RequestStatusPending, string(input.Action), updates)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRequest(ctx, input.RequestID)
}

// AdminProcess applies a super-admin processing step. Precondition order:
// unknown request, then actor, then the (status, action) transition table.
func (s *service) AdminProcess(ctx context.Context, input AdminProcessInput) (*RequestDetail, error) {
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if input.AdminID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin id required")
	}
	if !input.Action.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid admin action %q", input.Action)
	}
	if cost, ok := input.ActualCost.Value(); ok && cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actual_cost cannot be negative")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		request, loadErr := repo.FindByID(ctx, input.RequestID)
		if loadErr != nil {
			if errors.Is(loadErr, gorm.ErrRecordNotFound) {
				return pkgerrors.Newf(pkgerrors.CodeNotFound, "request %s not found", input.RequestID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, loadErr, "load request")
		}

		admin, actorErr := s.users.FindActiveUser(ctx, input.AdminID)
		if actorErr != nil {
			return actorErr
		}
		if admin == nil || admin.Role != enums.UserRoleSuperAdmin {
			return pkgerrors.Newf(pkgerrors.CodeForbidden, "user %s is not an active super admin", input.AdminID)
		}

		target, transitionErr := nextAdminStatus(request.Status, input.Action)
		if transitionErr != nil {
			return transitionErr
		}

		updates := s.adminUpdates(input, target)
		return s.applyTransition(ctx, repo, input.RequestID, request.Status, string(input.Action), updates)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRequest(ctx, input.RequestID)
}

// adminUpdates builds the column map for an admin transition, applying the
// Optional partial-update semantics and stamping action-specific defaults.
func (s *service) adminUpdates(input AdminProcessInput, target enums.RequestStatus) map[string]any {
	now := s.now().UTC()
	updates := map[string]any{
		"status":     target,
		"admin_id":   input.AdminID,
		"updated_at": now,
	}

	if input.Notes.IsSet() {
		updates["admin_notes"] = input.Notes.Ptr()
	}
	if input.ActualCost.IsSet() {
		updates["actual_cost"] = input.ActualCost.Ptr()
	}
	if input.PurchaseDate.IsSet() {
		updates["purchase_date"] = input.PurchaseDate.Ptr()
	} else if input.Action == enums.AdminActionMarkPurchased {
		updates["purchase_date"] = now
	}
	if input.ReceivedDate.IsSet() {
		updates["received_date"] = input.ReceivedDate.Ptr()
	} else if input.Action == enums.AdminActionMarkReceived {
		updates["received_date"] = now
	}
	return updates
}

// applyTransition runs the conditional status update. Zero rows affected means
// either the request vanished or another writer moved it first; a re-read
// distinguishes the two.
func (s *service) applyTransition(ctx context.Context, repo Repository, id uuid.UUID, expected enums.RequestStatus, action string, updates map[string]any) error {
	rows, err := repo.UpdateStatus(ctx, id, expected, updates)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update request status")
	}
	if rows > 0 {
		return nil
	}

	current, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "request %s not found", id)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload request")
	}
	return pkgerrors.Newf(pkgerrors.CodeInvalidState, "cannot %s a request in status %s", action, current.Status)
}

// GetRequest returns the hydrated view, or nil when the id is unknown.
func (s *service) GetRequest(ctx context.Context, requestID uuid.UUID) (*RequestDetail, error) {
	request, err := s.repo.FindDetail(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load request detail")
	}
	return DetailFromModel(request), nil
}

func (s *service) ListRequests(ctx context.Context, filters RequestFilters, params pagination.Params) (*RequestList, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid status %q", *filters.Status)
	}
	rows, next, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list requests")
	}
	return &RequestList{Requests: detailsFromModels(rows), NextCursor: next}, nil
}

func (s *service) ListPendingRequests(ctx context.Context) ([]RequestDetail, error) {
	rows, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending requests")
	}
	return detailsFromModels(rows), nil
}

// ListStaffRequests rejects unknown staff ids; a known staff member with no
// requests yields an empty slice, never nil.
func (s *service) ListStaffRequests(ctx context.Context, staffID uuid.UUID) ([]RequestDetail, error) {
	if staffID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "staff id required")
	}
	staff, err := s.users.FindUser(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "staff %s not found", staffID)
	}

	rows, err := s.repo.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list staff requests")
	}
	return detailsFromModels(rows), nil
}

func detailsFromModels(rows []models.Request) []RequestDetail {
	details := make([]RequestDetail, 0, len(rows))
	for i := range rows {
		details = append(details, *DetailFromModel(&rows[i]))
	}
	return details
}

func distinctItemIDs(lines []LineItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}
	return ids
}
