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

var _ repository.UserRepo = (*UserRepo)(nil)

type UserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// Create repo filled with seed users
func NewUserRepo() *UserRepo {
	r := &UserRepo{}
	r.Reset()
	return r
}

func (r *UserRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]models.User, len(defaultUsers))
	for _, u := range defaultUsers {
		u.Roles = slices.Clone(u.Roles)
		r.users[u.ID] = u
	}
}

func (r *UserRepo) GetUserByID(_ context.Context, userID string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("repo error: %w", apperrors.ErrUserNotFound)
	}

	u.Roles = slices.Clone(u.Roles)
	return u, nil
}
