package handlers

import (
	"errors"
	"net/http"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers/render"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers/userctx"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/logger"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
)

const (
	grantAuthorizationCode = "authorization_code"
	grantRefreshToken      = "refresh_token"

	tokenTypeBearer = "Bearer"
	tokenScope      = "openid profile email offline_access"
)

func handleAuthHealth() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, map[string]string{"status": "ok"})
	})
}

func handleToken(as authService, logger logger.Logger) http.Handler {
	type request struct {
		GrantType    string `json:"grant_type" validate:"required,oneof=authorization_code refresh_token"`
		Code         string `json:"code"`
		RefreshToken string `json:"refresh_token"`

		// Accepted for compatibility with OAuth clients, not checked
		ClientID     string `json:"client_id"`
		RedirectURI  string `json:"redirect_uri"`
		CodeVerifier string `json:"code_verifier"`
	}
	type response struct {
		TokenType    string `json:"token_type"`
		AccessToken  string `json:"access_token"`
		ExpiresIn    int64  `json:"expires_in"`
		RefreshToken string `json:"refresh_token"`
		Scope        string `json:"scope"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := bindOAuth[request](w, r, logger)
		if !ok {
			return
		}

		var (
			pair models.TokenPair
			err  error
		)

		switch req.GrantType {
		case grantAuthorizationCode:
			if req.Code == "" {
				renderOAuthError(w, errInvalidRequest, "code is required", http.StatusBadRequest)
				return
			}
			pair, err = as.ExchangeCode(r.Context(), req.Code)
		case grantRefreshToken:
			if req.RefreshToken == "" {
				renderOAuthError(w, errInvalidRequest, "refresh_token is required", http.StatusBadRequest)
				return
			}
			pair, err = as.RefreshPair(r.Context(), req.RefreshToken)
		}

		if err != nil {
			renderGrantError(w, logger, err)
			return
		}

		render.JSON(w, response{
			TokenType:    tokenTypeBearer,
			AccessToken:  pair.Access.Value,
			ExpiresIn:    int64(as.AccessTTL().Seconds()),
			RefreshToken: pair.Refresh.Value,
			Scope:        tokenScope,
		})
	})
}

func renderGrantError(w http.ResponseWriter, l errorLogger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAuthCodeNotFound):
		renderOAuthError(w, errInvalidGrant, "code not found or expired", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrUserNotFound):
		renderOAuthError(w, errInvalidGrant, "user not found", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrRefreshTokenNotFound):
		renderOAuthError(w, errInvalidGrant, "refresh token not found", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrRefreshTokenRevoked):
		renderOAuthError(w, errInvalidGrant, "refresh token revoked", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrRefreshTokenExpired):
		renderOAuthError(w, errInvalidGrant, "refresh token expired", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrInvalidRequest):
		renderOAuthError(w, errInvalidRequest, err.Error(), http.StatusBadRequest)
	default:
		renderServerError(w, l, "can't issue tokens", err)
	}
}

func handleRevoke(as authService, logger logger.Logger) http.Handler {
	type request struct {
		Token *string `json:"token" validate:"required"`
	}
	type response struct {
		Status string `json:"status"`
		Reason string `json:"reason,omitempty"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := bindOAuth[request](w, r, logger)
		if !ok {
			return
		}

		revoked, err := as.Revoke(r.Context(), *req.Token)
		switch {
		case err == nil && revoked:
			render.JSON(w, response{Status: "revoked"})
		case err == nil:
			render.JSON(w, response{Status: "ignored", Reason: "token not found"})
		case errors.Is(err, apperrors.ErrInvalidRequest):
			renderOAuthError(w, errInvalidRequest, err.Error(), http.StatusBadRequest)
		default:
			renderServerError(w, logger, "can't revoke token", err)
		}
	})
}

// Expects auth middleware to put the user to context
func handleUserInfo() http.Handler {
	type response struct {
		Sub   string   `json:"sub"`
		Name  string   `json:"name"`
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())
		render.JSON(w, response{Sub: user.Subject, Name: user.Name, Email: user.Email, Roles: user.Roles})
	})
}

// Bind body; on failure responds with OAuth style error and returns false
func bindOAuth[T render.Struct](w http.ResponseWriter, r *http.Request, l errorLogger) (T, bool) {
	data, err := render.Bind[T](r)
	if err == nil {
		return data, true
	}

	var reqErr *render.RequestError
	if errors.As(err, &reqErr) {
		renderOAuthError(w, errInvalidRequest, reqErr.Details, http.StatusBadRequest)
	} else {
		renderServerError(w, l, "can't bind request", err)
	}
	return data, false
}
