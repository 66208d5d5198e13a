package rbac

import (
	"context"
	"fmt"
	"slices"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/validate"
)

type RegisterParams struct {
	Key         string `json:"key" validate:"required,min=3,rolekey"`
	DisplayName string `json:"displayName" validate:"required,min=3"`
	Description string `json:"description"`
}

// Role registry: fixed built-in roles plus custom ones
type Service struct {
	repo repository.RoleRepo
}

func NewService(repo repository.RoleRepo) *Service {
	return &Service{repo: repo}
}

// List built-in roles in declaration order followed by custom roles in insertion order
func (s *Service) List(ctx context.Context) ([]models.Role, error) {
	custom, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't list roles. Err: %w", err)
	}

	return slices.Concat(models.BuiltinRoles, custom), nil
}

// Register custom role
// Has to return apperrors.ErrInvalidRole if params are not valid
// Has to return apperrors.ErrRoleAlreadyExists if key is taken by built-in or custom role
func (s *Service) Register(ctx context.Context, params RegisterParams) (models.Role, error) {
	if err := validate.Struct(params); err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidRole, err)
	}

	if models.IsBuiltinRole(params.Key) {
		return models.Role{}, fmt.Errorf("%w: %q is built-in", apperrors.ErrRoleAlreadyExists, params.Key)
	}

	role := models.Role{
		Key:         params.Key,
		DisplayName: params.DisplayName,
		Description: params.Description,
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return models.Role{}, fmt.Errorf("can't register role. Err: %w", err)
	}

	return role, nil
}
