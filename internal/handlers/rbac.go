package handlers

import (
	"errors"
	"net/http"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers/render"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/logger"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/rbac"
)

func handleListRoles(rs roleService, logger logger.Logger) http.Handler {
	type response struct {
		Roles []models.Role `json:"roles"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roles, err := rs.List(r.Context())
		if err != nil {
			renderServerError(w, logger, "can't list roles", err)
			return
		}
		render.JSON(w, response{Roles: roles})
	})
}

func handleRegisterRole(rs roleService, logger logger.Logger) http.Handler {
	type response struct {
		Status string      `json:"status"`
		Role   models.Role `json:"role"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params, ok := bindOAuth[rbac.RegisterParams](w, r, logger)
		if !ok {
			return
		}

		role, err := rs.Register(r.Context(), params)
		switch {
		case err == nil:
			render.JSONWithStatus(w, response{Status: "created", Role: role}, http.StatusCreated)
		case errors.Is(err, apperrors.ErrRoleAlreadyExists):
			renderOAuthError(w, errConflict, "role already exists", http.StatusConflict)
		case errors.Is(err, apperrors.ErrInvalidRole):
			renderOAuthError(w, errInvalidRequest, err.Error(), http.StatusBadRequest)
		default:
			renderServerError(w, logger, "can't register role", err)
		}
	})
}
