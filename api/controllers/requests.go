package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub-backend/api/middleware"
	"github.com/procurehub/procurehub-backend/api/responses"
	"github.com/procurehub/procurehub-backend/api/validators"
	"github.com/procurehub/procurehub-backend/internal/requests"
	"github.com/procurehub/procurehub-backend/pkg/enums"
	pkgerrors "github.com/procurehub/procurehub-backend/pkg/errors"
	"github.com/procurehub/procurehub-backend/pkg/logger"
	"github.com/procurehub/procurehub-backend/pkg/pagination"
	"github.com/procurehub/procurehub-backend/pkg/types"
)

type requestLinePayload struct {
	ItemID   string  `json:"item_id" validate:"required,uuid"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Notes    *string `json:"notes" validate:"omitempty,max=1000"`
}

type createRequestPayload struct {
	Title         string               `json:"title" validate:"required,max=255"`
	Justification *string              `json:"justification" validate:"omitempty,max=2000"`
	Items         []requestLinePayload `json:"items" validate:"required,min=1,dive"`
}

type managerDecisionPayload struct {
	Action string  `json:"action" validate:"required,oneof=approve reject"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

type adminProcessPayload struct {
	Action       string                          `json:"action"`
	Notes        types.Optional[string]          `json:"notes"`
	ActualCost   types.Optional[decimal.Decimal] `json:"actual_cost"`
	PurchaseDate types.Optional[time.Time]       `json:"purchase_date"`
	ReceivedDate types.Optional[time.Time]       `json:"received_date"`
}

func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "acting user unknown")
	}
	return id, nil
}

// CreateRequest submits a new procurement request on behalf of the actor.
func CreateRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		staffID, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createRequestPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := requests.CreateRequestInput{
			StaffID:       staffID,
			Title:         payload.Title,
			Justification: payload.Justification,
		}
		for _, line := range payload.Items {
			itemID, parseErr := uuid.Parse(line.ItemID)
			if parseErr != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid item id %q", line.ItemID))
				return
			}
			input.Items = append(input.Items, requests.LineItemInput{
				ItemID:   itemID,
				Quantity: line.Quantity,
				Notes:    line.Notes,
			})
		}

		detail, err := svc.CreateRequest(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

// ManagerDecision records the actor's approve/reject on a pending request.
func ManagerDecision(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		managerID, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		requestID, err := validators.PathUUID(r, "requestId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload managerDecisionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.ManagerDecision(ctx, requests.ManagerDecisionInput{
			RequestID: requestID,
			ManagerID: managerID,
			Action:    enums.ManagerAction(payload.Action),
			Notes:     payload.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// AdminProcess advances a request through the admin processing stages.
func AdminProcess(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		requestID, err := validators.PathUUID(r, "requestId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload adminProcessPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		action, err := enums.ParseAdminAction(payload.Action)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action"))
			return
		}

		detail, err := svc.AdminProcess(ctx, requests.AdminProcessInput{
			RequestID:    requestID,
			AdminID:      adminID,
			Action:       action,
			Notes:        payload.Notes,
			ActualCost:   payload.ActualCost,
			PurchaseDate: payload.PurchaseDate,
			ReceivedDate: payload.ReceivedDate,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// GetRequest returns a single hydrated request.
func GetRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID, err := validators.PathUUID(r, "requestId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.GetRequest(ctx, requestID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if detail == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Newf(pkgerrors.CodeNotFound, "request %s not found", requestID))
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ListRequests returns a filtered, cursor-paginated request listing.
func ListRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filters, err := parseRequestFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListRequests(ctx, *filters, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListPendingRequests returns every request awaiting a manager decision.
func ListPendingRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pending, err := svc.ListPendingRequests(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"requests": pending})
	}
}

// ListStaffRequests returns the request history of one staff member.
func ListStaffRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		staffID, err := validators.PathUUID(r, "staffId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		history, err := svc.ListStaffRequests(ctx, staffID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"requests": history})
	}
}

func parseRequestFilters(r *http.Request) (*requests.RequestFilters, error) {
	filters := &requests.RequestFilters{}
	query := r.URL.Query()

	if raw := query.Get("status"); raw != "" {
		status, err := enums.ParseRequestStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filters.Status = &status
	}
	if raw := query.Get("staff_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid staff_id %q", raw)
		}
		filters.StaffID = &id
	}
	if raw := query.Get("manager_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid manager_id %q", raw)
		}
		filters.ManagerID = &id
	}

	from, err := validators.ParseQueryDate(r, "date_from")
	if err != nil {
		return nil, err
	}
	filters.DateFrom = from

	to, err := validators.ParseQueryDate(r, "date_to")
	if err != nil {
		return nil, err
	}
	if to != nil {
		// date_to is inclusive through end of day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &end
	}

	return filters, nil
}
