package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub-backend/api/responses"
	"github.com/procurehub/procurehub-backend/api/validators"
	"github.com/procurehub/procurehub-backend/internal/catalog"
	pkgerrors "github.com/procurehub/procurehub-backend/pkg/errors"
	"github.com/procurehub/procurehub-backend/pkg/logger"
)

type createItemPayload struct {
	Name           string           `json:"name" validate:"required,max=255"`
	Description    *string          `json:"description" validate:"omitempty,max=2000"`
	CategoryID     string           `json:"category_id" validate:"required,uuid"`
	Unit           string           `json:"unit" validate:"required,max=50"`
	EstimatedPrice *decimal.Decimal `json:"estimated_price"`
}

type updateItemPayload struct {
	Name           *string          `json:"name" validate:"omitempty,max=255"`
	Description    *string          `json:"description" validate:"omitempty,max=2000"`
	Unit           *string          `json:"unit" validate:"omitempty,max=50"`
	EstimatedPrice *decimal.Decimal `json:"estimated_price"`
	IsActive       *bool            `json:"is_active"`
}

func CreateItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload createItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		categoryID, err := uuid.Parse(payload.CategoryID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid category id %q", payload.CategoryID))
			return
		}

		item, err := svc.CreateItem(ctx, catalog.CreateItemInput{
			Name:           payload.Name,
			Description:    payload.Description,
			CategoryID:     categoryID,
			Unit:           payload.Unit,
			EstimatedPrice: payload.EstimatedPrice,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UpdateItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.UpdateItem(ctx, itemID, catalog.UpdateItemInput{
			Name:           payload.Name,
			Description:    payload.Description,
			Unit:           payload.Unit,
			EstimatedPrice: payload.EstimatedPrice,
			IsActive:       payload.IsActive,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func DeactivateItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeactivateItem(ctx, itemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

func GetItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		itemID, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.GetItem(ctx, itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func ListItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filters := catalog.ListItemsFilters{
			ActiveOnly: r.URL.Query().Get("active_only") == "true",
		}
		if raw := r.URL.Query().Get("category_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid category_id %q", raw))
				return
			}
			filters.CategoryID = &id
		}

		items, err := svc.ListItems(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}
