package controllers

import (
	"net/http"

	"github.com/procurehub/procurehub-backend/api/responses"
	"github.com/procurehub/procurehub-backend/api/validators"
	"github.com/procurehub/procurehub-backend/internal/directory"
	"github.com/procurehub/procurehub-backend/pkg/enums"
	pkgerrors "github.com/procurehub/procurehub-backend/pkg/errors"
	"github.com/procurehub/procurehub-backend/pkg/logger"
)

type createUserPayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=255"`
	Role  string `json:"role" validate:"required,oneof=staff manager super_admin"`
}

type updateUserPayload struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=staff manager super_admin"`
	IsActive *bool   `json:"is_active"`
}

func CreateUser(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload createUserPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.CreateUser(ctx, directory.CreateUserInput{
			Email: payload.Email,
			Name:  payload.Name,
			Role:  enums.UserRole(payload.Role),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

func UpdateUser(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateUserPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := directory.UpdateUserInput{
			Name:     payload.Name,
			IsActive: payload.IsActive,
		}
		if payload.Role != nil {
			role := enums.UserRole(*payload.Role)
			input.Role = &role
		}

		user, err := svc.UpdateUser(ctx, userID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// DeactivateUser soft-deletes: the row stays, is_active flips off.
func DeactivateUser(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeactivateUser(ctx, userID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

func GetUser(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.GetUser(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func ListUsers(svc directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filters := directory.ListUsersFilters{
			ActiveOnly: r.URL.Query().Get("active_only") == "true",
		}
		if raw := r.URL.Query().Get("role"); raw != "" {
			role, err := enums.ParseUserRole(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role filter"))
				return
			}
			filters.Role = &role
		}

		users, err := svc.ListUsers(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"users": users})
	}
}
