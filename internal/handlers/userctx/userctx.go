package userctx

import (
	"context"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// Create a new context with the authenticated user
func New(ctx context.Context, u models.UserInfo) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// Extract the authenticated user from the context
func FromContext(ctx context.Context) (models.UserInfo, bool) {
	u, ok := ctx.Value(userKey).(models.UserInfo)
	return u, ok
}
