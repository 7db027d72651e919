// internal/app/features/messages/routes.go
package messages

import (
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// GroupRoutes is mounted under /api/groups/{groupID}/messages; the
// groupID URL param comes from the mount pattern.
func GroupRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandlePost)
		pr.Post("/{messageID}/vote", h.HandleVote)
		pr.Get("/typing", h.ServeTyping)
		pr.Post("/typing", h.HandleTyping)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Post("/{messageID}/pin", h.HandlePin)
		pr.Delete("/{messageID}", h.HandleDelete)
	})

	return r
}

// Routes holds the group-independent message endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/events", h.ServeEvents)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin))
		pr.Post("/broadcast", h.HandleBroadcast)
	})

	return r
}
