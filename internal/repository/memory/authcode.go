package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository"
)

var _ repository.AuthCodeRepo = (*AuthCodeRepo)(nil)

type AuthCodeRepo struct {
	mu    sync.Mutex
	codes map[string]string // code -> user id
}

func NewAuthCodeRepo() *AuthCodeRepo {
	r := &AuthCodeRepo{}
	r.Reset()
	return r
}

func (r *AuthCodeRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codes = maps.Clone(defaultAuthCodes)
}

// Add code for the user, used by tests and seeding
func (r *AuthCodeRepo) Add(code string, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codes[code] = userID
}

func (r *AuthCodeRepo) Consume(_ context.Context, code string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.codes[code]
	if !ok {
		return "", fmt.Errorf("repo error: %w", apperrors.ErrAuthCodeNotFound)
	}
	delete(r.codes, code)

	return userID, nil
}
