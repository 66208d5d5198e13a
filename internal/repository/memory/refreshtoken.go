package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository"
)

var _ repository.RefreshTokenRepo = (*RefreshTokenRepo)(nil)

type RefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken // keyed by token hash
}

func NewRefreshTokenRepo() *RefreshTokenRepo {
	return &RefreshTokenRepo{tokens: make(map[string]models.RefreshToken)}
}

func (r *RefreshTokenRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens = make(map[string]models.RefreshToken)
}

func (r *RefreshTokenRepo) Save(_ context.Context, token models.RefreshToken) error {
	if token.TokenHash == "" {
		return fmt.Errorf("repo error: empty token hash")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token.TokenHash] = token
	return nil
}

// Get token
// It should return result even it expired or revoked already
func (r *RefreshTokenRepo) Get(_ context.Context, tokenHash string) (models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenHash]
	if !ok {
		return token, fmt.Errorf("repo error: %w", apperrors.ErrRefreshTokenNotFound)
	}
	return token, nil
}

func (r *RefreshTokenRepo) Delete(_ context.Context, tokenHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tokens[tokenHash]
	delete(r.tokens, tokenHash)
	return ok, nil
}

// Revoke token
// Should not rewrite RevokedAt of already revoked tokens
func (r *RefreshTokenRepo) Revoke(_ context.Context, tokenHash string, at time.Time) (models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenHash]
	if !ok {
		return token, fmt.Errorf("repo error: %w", apperrors.ErrRefreshTokenNotFound)
	}

	if token.RevokedAt == nil {
		token.RevokedAt = &at
		r.tokens[tokenHash] = token
	}
	return token, nil
}

// Number of stored records, expired and revoked included
func (r *RefreshTokenRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.tokens)
}
