package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository"
)

// Custom roles, insertion ordered
var _ repository.RoleRepo = (*RoleRepo)(nil)

type RoleRepo struct {
	mu    sync.RWMutex
	roles []models.Role
}

func NewRoleRepo() *RoleRepo {
	return &RoleRepo{}
}

func (r *RoleRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roles = nil
}

func (r *RoleRepo) CreateRole(_ context.Context, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exists := slices.ContainsFunc(r.roles, func(existing models.Role) bool {
		return existing.Key == role.Key
	})
	if exists {
		return fmt.Errorf("repo error: %w", apperrors.ErrRoleAlreadyExists)
	}

	r.roles = append(r.roles, role)
	return nil
}

func (r *RoleRepo) ListRoles(_ context.Context) ([]models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.roles), nil
}
