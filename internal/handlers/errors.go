package handlers

import (
	"net/http"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers/render"
)

const (
	errInvalidRequest = "invalid_request"
	errInvalidGrant   = "invalid_grant"
	errConflict       = "conflict"
	errNotFound       = "not_found"
	errServerError    = "server_error"
)

// OAuth style error body
// Description is either a text or render.FlattenedErrors
type oauthError struct {
	Error       string `json:"error"`
	Description any    `json:"error_description,omitempty"`
}

func renderOAuthError(w http.ResponseWriter, code string, description any, status int) {
	render.JSONWithStatus(w, oauthError{Error: code, Description: description}, status)
}

type errorLogger interface {
	Error(msg string, args ...any)
}

// Log unexpected error and respond with 500
func renderServerError(w http.ResponseWriter, l errorLogger, msg string, err error) {
	l.Error(msg, "error", err.Error())
	render.JSONWithStatus(w, map[string]string{"error": errServerError}, http.StatusInternalServerError)
}
