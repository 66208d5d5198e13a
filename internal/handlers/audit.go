package handlers

import (
	"net/http"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers/render"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
)

func handleAuditEvents(log auditLog) http.Handler {
	type response struct {
		Events []models.AuditEvent `json:"events"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		events := log.Events()
		if events == nil {
			events = []models.AuditEvent{}
		}
		render.JSON(w, response{Events: events})
	})
}
