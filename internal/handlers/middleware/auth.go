package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers/render"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers/userctx"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
)

type authService interface {
	// Has to return error if request carries no token
	AccessFromRequest(r *http.Request) (string, error)

	// Has to return error wrapping apperrors.ErrInvalidToken if token is not valid
	UserInfo(ctx context.Context, access string) (models.UserInfo, error)
}

type errorLogger interface {
	Error(msg string, args ...any)
}

// AuthMiddleware lets through requests with valid bearer token only
// The token owner is put to the request context, see userctx
func AuthMiddleware(as authService, l errorLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access, err := as.AccessFromRequest(r)
			if err != nil {
				render.JSONWithStatus(w, map[string]string{"error": "unauthorized"}, http.StatusUnauthorized)
				return
			}

			info, err := as.UserInfo(r.Context(), access)
			switch {
			case err == nil:
			case errors.Is(err, apperrors.ErrInvalidToken):
				render.JSONWithStatus(w, map[string]string{"error": "invalid_token"}, http.StatusUnauthorized)
				return
			default:
				l.Error("can't authenticate request", "error", err.Error())
				render.JSONWithStatus(w, map[string]string{"error": "server_error"}, http.StatusInternalServerError)
				return
			}

			ctx := userctx.New(r.Context(), info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
