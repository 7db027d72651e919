// internal/app/features/groups/routes.go
package groups

import (
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Reads are open to every signed-in user.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGroup)
		pr.Get("/{id}/settings", h.ServeSettings)
		pr.Get("/{id}/members", h.ServeMembers)
	})

	// Mutations are admin-only. The store enforces this again at the
	// mutation boundary.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleRename)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Put("/{id}/settings", h.HandleUpdateSettings)
		pr.Post("/{id}/members", h.HandleAddMember)
		pr.Delete("/{id}/members/{studentID}", h.HandleRemoveMember)
	})

	return r
}
